package graph

import (
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"crm/pkg/domain/service"
)

// NewSchema builds the full CRM schema: hello/customers/products/orders
// queries and the five mutations, each mutation returning an explicit
// payload object instead of a bare entity.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"customer":    &graphql.Field{Type: customerType},
			"products":    &graphql.Field{Type: graphql.NewList(productType)},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	customerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createCustomerPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: customerType},
			"ok":       &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	bulkCreateCustomersPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewList(customerType)},
			"errors":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"ok":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createProductPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: productType},
			"ok":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createOrderPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order":   &graphql.Field{Type: orderType},
			"ok":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateLowStockPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateLowStockProductsPayload",
		Fields: graphql.Fields{
			"products": &graphql.Field{Type: graphql.NewList(productType)},
			"ok":       &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, CRM!", nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customers, err := r.customers.ListCustomers()
					if err != nil {
						return nil, err
					}
					views := make([]*customerView, 0, len(customers))
					for _, c := range customers {
						views = append(views, r.customerToView(c))
					}
					return views, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := r.products.ListProducts()
					if err != nil {
						return nil, err
					}
					return r.productsToViews(products), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"orderDateGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if since, ok := p.Args["orderDateGte"].(time.Time); ok {
						orders, err := r.orders.ListOrdersSince(since)
						if err != nil {
							return nil, err
						}
						return r.ordersToViews(orders), nil
					}
					orders, err := r.orders.ListOrders()
					if err != nil {
						return nil, err
					}
					return r.ordersToViews(orders), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayloadType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					email, _ := p.Args["email"].(string)
					phone, _ := p.Args["phone"].(string)

					customer, err := r.customers.CreateCustomer(name, email, phone)
					if err != nil {
						if msg, ok := failureMessage(err); ok {
							return &createCustomerPayload{OK: false, Message: msg}, nil
						}
						return nil, err
					}
					return &createCustomerPayload{
						Customer: r.customerToView(customer),
						OK:       true,
						Message:  msgCustomerCreated,
					}, nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayloadType,
				Args: graphql.FieldConfigArgument{
					"customers": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["customers"].([]interface{})
					inputs := make([]service.CustomerInput, 0, len(raw))
					for _, v := range raw {
						row, _ := v.(map[string]interface{})
						input := service.CustomerInput{}
						input.Name, _ = row["name"].(string)
						input.Email, _ = row["email"].(string)
						input.Phone, _ = row["phone"].(string)
						inputs = append(inputs, input)
					}

					customers, rowErrors, err := r.customers.BulkCreateCustomers(inputs)
					if err != nil {
						return nil, err
					}
					if len(rowErrors) > 0 {
						return &bulkCreateCustomersPayload{
							Customers: []*customerView{},
							Errors:    rowErrors,
							OK:        false,
							Message:   "Some rows failed validation; no customers were created.",
						}, nil
					}

					views := make([]*customerView, 0, len(customers))
					for _, c := range customers {
						views = append(views, r.customerToView(c))
					}
					return &bulkCreateCustomersPayload{
						Customers: views,
						Errors:    []string{},
						OK:        true,
						Message:   msgCustomersBulk,
					}, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: createProductPayloadType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"stock": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					stock, _ := p.Args["stock"].(int)
					price, _ := p.Args["price"].(float64)

					product, err := r.products.CreateProduct(name, stock, decimal.NewFromFloat(price))
					if err != nil {
						if msg, ok := failureMessage(err); ok {
							return &createProductPayload{OK: false, Message: msg}, nil
						}
						return nil, err
					}
					return &createProductPayload{
						Product: r.productToView(product),
						OK:      true,
						Message: msgProductCreated,
					}, nil
				},
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayloadType,
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
					},
					"orderDate": &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rawCustomerID, _ := p.Args["customerId"].(string)
					customerID, err := uuid.Parse(rawCustomerID)
					if err != nil {
						return &createOrderPayload{OK: false, Message: msgInvalidID}, nil
					}

					rawProductIDs, _ := p.Args["productIds"].([]interface{})
					productIDs, err := parseIDs(rawProductIDs)
					if err != nil {
						return &createOrderPayload{OK: false, Message: msgInvalidID}, nil
					}

					var orderDate *time.Time
					if d, ok := p.Args["orderDate"].(time.Time); ok {
						orderDate = &d
					}

					order, err := r.orders.CreateOrder(customerID, productIDs, orderDate)
					if err != nil {
						if msg, ok := failureMessage(err); ok {
							return &createOrderPayload{OK: false, Message: msg}, nil
						}
						return nil, err
					}
					return &createOrderPayload{
						Order:   r.orderToView(order),
						OK:      true,
						Message: msgOrderCreated,
					}, nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: updateLowStockPayloadType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := r.products.RestockLowStockProducts()
					if err != nil {
						return nil, err
					}
					return &updateLowStockPayload{
						Products: r.productsToViews(products),
						OK:       true,
						Message:  msgLowStockUpdated,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
