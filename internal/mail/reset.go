package mail

import (
	"fmt"
	"net/url"
)

// ComposeResetEmail builds the password reset message. The link points the
// shopper back at the frontend reset page carrying the one-time token.
func ComposeResetEmail(frontendURL, to, token string) Message {
	link := fmt.Sprintf("%s/reset?resetToken=%s", frontendURL, url.QueryEscape(token))
	return Message{
		To:      to,
		Subject: "Your password reset token",
		TextBody: fmt.Sprintf(
			"Your password reset token is here!\n\nOpen %s to choose a new password. The link expires in one hour.",
			link,
		),
		HTMLBody: fmt.Sprintf(
			`<div style="border:1px solid black;padding:20px;font-family:sans-serif;line-height:2;font-size:20px;">`+
				`<h2>Your password reset token is here!</h2>`+
				`<p><a href="%s">Click here to reset your password</a>. The link expires in one hour.</p>`+
				`</div>`,
			link,
		),
	}
}
