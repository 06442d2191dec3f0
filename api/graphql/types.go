package graphql

import (
	"github.com/fitgear/storefront-backend/internal/users"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/graphql-go/graphql"
)

// schemaTypes holds the object types shared by queries and mutations. They
// are built per schema because the user type's cart field closes over the
// resolver's services.
type schemaTypes struct {
	user     *graphql.Object
	item     *graphql.Object
	cartItem *graphql.Object
	order    *graphql.Object
	message  *graphql.Object
}

func userFromSource(source interface{}) *users.UserDTO {
	switch v := source.(type) {
	case *users.UserDTO:
		return v
	case users.UserDTO:
		return &v
	}
	return nil
}

func itemFromSource(source interface{}) *models.Item {
	switch v := source.(type) {
	case *models.Item:
		return v
	case models.Item:
		return &v
	}
	return nil
}

func cartItemFromSource(source interface{}) *models.CartItem {
	switch v := source.(type) {
	case *models.CartItem:
		return v
	case models.CartItem:
		return &v
	}
	return nil
}

func orderFromSource(source interface{}) *models.Order {
	switch v := source.(type) {
	case *models.Order:
		return v
	case models.Order:
		return &v
	}
	return nil
}

func newTypes(r *Resolver) *schemaTypes {
	t := &schemaTypes{}

	t.item = graphql.NewObject(graphql.ObjectConfig{
		Name: "Item",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.ID.String(), nil
					}
					return nil, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.Title, nil
					}
					return nil, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.Description, nil
					}
					return nil, nil
				},
			},
			"price": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Price in integer cents.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.PriceCents, nil
					}
					return nil, nil
				},
			},
			"image": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil && item.Image != nil {
						return *item.Image, nil
					}
					return nil, nil
				},
			},
			"largeImage": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil && item.LargeImage != nil {
						return *item.LargeImage, nil
					}
					return nil, nil
				},
			},
			"userId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.UserID.String(), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if item := itemFromSource(p.Source); item != nil {
						return item.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	t.cartItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if entry := cartItemFromSource(p.Source); entry != nil {
						return entry.ID.String(), nil
					}
					return nil, nil
				},
			},
			"quantity": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if entry := cartItemFromSource(p.Source); entry != nil {
						return entry.Quantity, nil
					}
					return nil, nil
				},
			},
			"item": &graphql.Field{
				Type: t.item,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if entry := cartItemFromSource(p.Source); entry != nil && entry.Item != nil {
						return entry.Item, nil
					}
					return nil, nil
				},
			},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok {
						return line.ID.String(), nil
					}
					return nil, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok {
						return line.Title, nil
					}
					return nil, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok {
						return line.Description, nil
					}
					return nil, nil
				},
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok {
						return line.PriceCents, nil
					}
					return nil, nil
				},
			},
			"image": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok && line.Image != nil {
						return *line.Image, nil
					}
					return nil, nil
				},
			},
			"largeImage": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok && line.LargeImage != nil {
						return *line.LargeImage, nil
					}
					return nil, nil
				},
			},
			"quantity": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if line, ok := p.Source.(models.OrderItem); ok {
						return line.Quantity, nil
					}
					return nil, nil
				},
			},
		},
	})

	t.order = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.ID.String(), nil
					}
					return nil, nil
				},
			},
			"total": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Captured amount in integer cents.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.TotalCents, nil
					}
					return nil, nil
				},
			},
			"chargeId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.ChargeID, nil
					}
					return nil, nil
				},
			},
			"userId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.UserID.String(), nil
					}
					return nil, nil
				},
			},
			"items": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(orderItemType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.Items, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if order := orderFromSource(p.Source); order != nil {
						return order.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user := userFromSource(p.Source); user != nil {
						return user.ID.String(), nil
					}
					return nil, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user := userFromSource(p.Source); user != nil {
						return user.Email, nil
					}
					return nil, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user := userFromSource(p.Source); user != nil {
						return user.Name, nil
					}
					return nil, nil
				},
			},
			"permissions": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user := userFromSource(p.Source); user != nil {
						return user.Permissions, nil
					}
					return nil, nil
				},
			},
			// The cart only resolves for the signed-in user's own record.
			"cart": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(t.cartItem)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := userFromSource(p.Source)
					if user == nil {
						return nil, nil
					}
					actor, err := r.Sessions.CurrentUser(p.Context)
					if err != nil {
						return nil, err
					}
					if actor == nil || actor.ID != user.ID {
						return nil, nil
					}
					return r.Cart.ListCart(p.Context, actor)
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user := userFromSource(p.Source); user != nil {
						return user.CreatedAt, nil
					}
					return nil, nil
				},
			},
		},
	})

	t.message = graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"message": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
		},
	})

	return t
}
