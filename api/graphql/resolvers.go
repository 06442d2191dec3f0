package graphql

import (
	"github.com/fitgear/storefront-backend/api/validators"
	"github.com/fitgear/storefront-backend/internal/auth"
	"github.com/fitgear/storefront-backend/internal/items"
	"github.com/fitgear/storefront-backend/internal/users"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/pagination"
	"github.com/graphql-go/graphql"
)

func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, nil
	}
	return users.FromModel(actor), nil
}

func (r *Resolver) item(p graphql.ResolveParams) (interface{}, error) {
	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	item, err := r.Items.FindByID(p.Context, id)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *Resolver) items(p graphql.ResolveParams) (interface{}, error) {
	params := pagination.Params{
		Skip:  argInt(p, "skip", 0),
		First: argInt(p, "first", pagination.DefaultLimit),
	}
	return r.Items.List(p.Context, params)
}

func (r *Resolver) itemsCount(p graphql.ResolveParams) (interface{}, error) {
	count, err := r.Items.Count(p.Context)
	if err != nil {
		return nil, err
	}
	return int(count), nil
}

func (r *Resolver) order(p graphql.ResolveParams) (interface{}, error) {
	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Orders.Get(p.Context, actor, id)
}

func (r *Resolver) orders(p graphql.ResolveParams) (interface{}, error) {
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Orders.ListMine(p.Context, actor)
}

func (r *Resolver) createItem(p graphql.ResolveParams) (interface{}, error) {
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	req := items.CreateItemRequest{
		Title:       argString(p, "title"),
		Description: argString(p, "description"),
		PriceCents:  argInt(p, "price", 0),
		Image:       argStringPtr(p, "image"),
		LargeImage:  argStringPtr(p, "largeImage"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return r.Items.Create(p.Context, actor, req)
}

func (r *Resolver) updateItem(p graphql.ResolveParams) (interface{}, error) {
	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	req := items.UpdateItemRequest{
		Title:       argStringPtr(p, "title"),
		Description: argStringPtr(p, "description"),
		PriceCents:  argIntPtr(p, "price"),
		Image:       argStringPtr(p, "image"),
		LargeImage:  argStringPtr(p, "largeImage"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return r.Items.Update(p.Context, actor, id, req)
}

func (r *Resolver) deleteItem(p graphql.ResolveParams) (interface{}, error) {
	id, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Items.Delete(p.Context, actor, id)
}

func (r *Resolver) signup(p graphql.ResolveParams) (interface{}, error) {
	req := auth.SignupRequest{
		Email:    argString(p, "email"),
		Name:     argString(p, "name"),
		Password: argString(p, "password"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return nil, err
	}
	session, err := r.Auth.Signup(p.Context, req)
	if err != nil {
		return nil, err
	}
	setSessionCookie(p.Context, r.JWT, session.Token)
	return session.User, nil
}

func (r *Resolver) signin(p graphql.ResolveParams) (interface{}, error) {
	req := auth.SigninRequest{
		Email:    argString(p, "email"),
		Password: argString(p, "password"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return nil, err
	}
	session, err := r.Auth.Signin(p.Context, req)
	if err != nil {
		return nil, err
	}
	setSessionCookie(p.Context, r.JWT, session.Token)
	return session.User, nil
}

func (r *Resolver) signout(p graphql.ResolveParams) (interface{}, error) {
	clearSessionCookie(p.Context, r.JWT)
	return map[string]interface{}{"message": "goodbye"}, nil
}

func (r *Resolver) requestReset(p graphql.ResolveParams) (interface{}, error) {
	if err := r.Auth.RequestReset(p.Context, argString(p, "email")); err != nil {
		return nil, err
	}
	return map[string]interface{}{"message": "thanks, check your email for a reset link"}, nil
}

func (r *Resolver) resetPassword(p graphql.ResolveParams) (interface{}, error) {
	req := auth.ResetPasswordRequest{
		ResetToken:      argString(p, "resetToken"),
		Password:        argString(p, "password"),
		ConfirmPassword: argString(p, "confirmPassword"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return nil, err
	}
	session, err := r.Auth.ResetPassword(p.Context, req)
	if err != nil {
		return nil, err
	}
	setSessionCookie(p.Context, r.JWT, session.Token)
	return session.User, nil
}

func (r *Resolver) updatePermissions(p graphql.ResolveParams) (interface{}, error) {
	userID, err := argUUID(p, "userId")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Auth.UpdatePermissions(p.Context, actor, auth.UpdatePermissionsRequest{
		UserID:      userID,
		Permissions: argStringSlice(p, "permissions"),
	})
}

func (r *Resolver) addToCart(p graphql.ResolveParams) (interface{}, error) {
	itemID, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Cart.AddToCart(p.Context, actor, itemID)
}

func (r *Resolver) removeFromCart(p graphql.ResolveParams) (interface{}, error) {
	entryID, err := argUUID(p, "id")
	if err != nil {
		return nil, err
	}
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Cart.RemoveFromCart(p.Context, actor, entryID)
}

func (r *Resolver) createOrder(p graphql.ResolveParams) (interface{}, error) {
	actor, err := r.Sessions.CurrentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Checkout.Execute(p.Context, actor, argString(p, "token"))
}
