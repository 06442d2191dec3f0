package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/fitgear/storefront-backend/api/responses"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/graphql-go/graphql"
)

type requestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL POST requests. Operation failures are returned
// in-band as GraphQL errors with the machine code under extensions.code;
// only malformed requests get a non-200 status.
func Handler(schema graphql.Schema, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "only POST is supported"))
			return
		}

		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}
		if body.Query == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query is required"))
			return
		}

		// Resolvers that manage the session cookie need the writer.
		ctx = WithResponseWriter(ctx, w)

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			OperationName:  body.OperationName,
			Context:        ctx,
		})

		if logg != nil && len(result.Errors) > 0 {
			for _, gqlErr := range result.Errors {
				errCtx := logg.WithField(ctx, "graphql_error", gqlErr.Message)
				logg.Warn(errCtx, "graphql.operation_failed")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil && logg != nil {
			logg.Error(ctx, "failed to encode graphql response", err)
		}
	}
}
