package graphql

import (
	"fmt"

	"github.com/fitgear/storefront-backend/internal/auth"
	"github.com/fitgear/storefront-backend/internal/cart"
	"github.com/fitgear/storefront-backend/internal/checkout"
	"github.com/fitgear/storefront-backend/internal/items"
	"github.com/fitgear/storefront-backend/internal/orders"
	"github.com/fitgear/storefront-backend/internal/session"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/graphql-go/graphql"
)

// Resolver bundles the services behind the GraphQL operations.
type Resolver struct {
	Sessions session.Service
	Auth     auth.Service
	Items    items.Service
	Cart     cart.Service
	Orders   orders.Service
	Checkout checkout.Service
	JWT      config.JWTConfig
	Logger   *logger.Logger
}

func (r *Resolver) validate() error {
	if r.Sessions == nil {
		return fmt.Errorf("session service is required")
	}
	if r.Auth == nil {
		return fmt.Errorf("auth service is required")
	}
	if r.Items == nil {
		return fmt.Errorf("items service is required")
	}
	if r.Cart == nil {
		return fmt.Errorf("cart service is required")
	}
	if r.Orders == nil {
		return fmt.Errorf("orders service is required")
	}
	if r.Checkout == nil {
		return fmt.Errorf("checkout service is required")
	}
	if r.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

// NewSchema wires every query and mutation into an executable schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	if err := r.validate(); err != nil {
		return graphql.Schema{}, err
	}

	t := newTypes(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    t.user,
				Resolve: r.me,
			},
			"item": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.item,
			},
			"items": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(t.item)),
				Args: graphql.FieldConfigArgument{
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"first": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.items,
			},
			"itemsCount": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: r.itemsCount,
			},
			"order": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.order,
			},
			"orders": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(t.order)),
				Resolve: r.orders,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
					"largeImage":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.createItem,
			},
			"updateItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.Int},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
					"largeImage":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.updateItem,
			},
			"deleteItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deleteItem,
			},
			"signup": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.signup,
			},
			"signin": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.signin,
			},
			"signout": &graphql.Field{
				Type:    t.message,
				Resolve: r.signout,
			},
			"requestReset": &graphql.Field{
				Type: t.message,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.requestReset,
			},
			"resetPassword": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"resetToken":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"confirmPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resetPassword,
			},
			"updatePermissions": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"userId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"permissions": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
				},
				Resolve: r.updatePermissions,
			},
			"addToCart": &graphql.Field{
				Type: t.cartItem,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.addToCart,
			},
			"removeFromCart": &graphql.Field{
				Type: t.cartItem,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.removeFromCart,
			},
			"createOrder": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.createOrder,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
