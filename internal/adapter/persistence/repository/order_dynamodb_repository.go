package repository

import (
	"context"
	"errors"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

const ordersLocationCompletedIndex = "location_id-completed_at-index"

type lineItemItem struct {
	Kind            string `dynamodbav:"kind"`
	Name            string `dynamodbav:"name"`
	UnitPrice       string `dynamodbav:"unit_price"`
	UnitCost        string `dynamodbav:"unit_cost"`
	Quantity        int    `dynamodbav:"quantity"`
	WarrantyMonths  int    `dynamodbav:"warranty_months"`
	DurationMinutes int    `dynamodbav:"duration_minutes"`
}

type orderItem struct {
	ID                       string         `dynamodbav:"id"`
	LocationID               string         `dynamodbav:"location_id"`
	ClientID                 string         `dynamodbav:"client_id,omitempty"`
	TechnicianID             string         `dynamodbav:"technician_id,omitempty"`
	TechnicianName           string         `dynamodbav:"technician_name,omitempty"`
	LeadSource               string         `dynamodbav:"lead_source,omitempty"`
	Status                   string         `dynamodbav:"status"`
	Lines                    []lineItemItem `dynamodbav:"lines"`
	EstimatedCost            string         `dynamodbav:"estimated_cost"`
	FinalCost                string         `dynamodbav:"final_cost"`
	Prepayment               string         `dynamodbav:"prepayment"`
	ServicePrice             string         `dynamodbav:"service_price"`
	PartsPrice               string         `dynamodbav:"parts_price"`
	CostTotal                string         `dynamodbav:"cost_total"`
	TotalProfit              string         `dynamodbav:"total_profit"`
	MasterCommission         string         `dynamodbav:"master_commission"`
	EstimatedDurationMinutes int            `dynamodbav:"estimated_duration_minutes"`
	AcceptedAt               string         `dynamodbav:"accepted_at,omitempty"`
	CompletedAt              string         `dynamodbav:"completed_at,omitempty"`
	CreatedAt                string         `dynamodbav:"created_at"`
	UpdatedAt                string         `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: location_id-completed_at-index (PK: location_id, SK: completed_at)
//
// completed_at is only written once an order closes, so open orders stay out of the index.
type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// Update replaces a stored order. Closed orders are rejected by the same condition
// so a concurrent close cannot be overwritten.
func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #status <> :closed"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":closed": &types.AttributeValueMemberS{Value: string(entities.OrderStatusClosed)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			log.Debug().Str("order_id", o.ID).Msg("[order][repository] conditional update rejected")
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// ListClosedBetween returns closed orders of a location completed within [from, to].
func (r *OrderDynamoRepository) ListClosedBetween(ctx context.Context, locationID string, from, to time.Time) ([]entities.Order, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersLocationCompletedIndex),
		KeyConditionExpression: aws.String("#location_id = :loc AND #completed_at BETWEEN :from AND :to"),
		FilterExpression:       aws.String("#status = :closed"),
		ExpressionAttributeNames: map[string]string{
			"#location_id":  "location_id",
			"#completed_at": "completed_at",
			"#status":       "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":loc":    &types.AttributeValueMemberS{Value: locationID},
			":from":   &types.AttributeValueMemberS{Value: formatTime(from)},
			":to":     &types.AttributeValueMemberS{Value: formatTime(to)},
			":closed": &types.AttributeValueMemberS{Value: string(entities.OrderStatusClosed)},
		},
	})

	orders := make([]entities.Order, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
	}
	log.Debug().Str("location_id", locationID).Int("orders", len(orders)).Msg("[order][repository] closed orders loaded")
	return orders, nil
}

func (r *OrderDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Order, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	lines := make([]lineItemItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, lineItemItem{
			Kind:            string(l.Kind),
			Name:            l.Name,
			UnitPrice:       decimalToString(l.UnitPrice),
			UnitCost:        decimalToString(l.UnitCost),
			Quantity:        l.Quantity,
			WarrantyMonths:  l.WarrantyMonths,
			DurationMinutes: l.DurationMinutes,
		})
	}
	return orderItem{
		ID:                       o.ID,
		LocationID:               o.LocationID,
		ClientID:                 o.ClientID,
		TechnicianID:             o.TechnicianID,
		TechnicianName:           o.TechnicianName,
		LeadSource:               o.LeadSource,
		Status:                   string(o.Status),
		Lines:                    lines,
		EstimatedCost:            decimalToString(o.EstimatedCost),
		FinalCost:                decimalToString(o.FinalCost),
		Prepayment:               decimalToString(o.Prepayment),
		ServicePrice:             decimalToString(o.ServicePrice),
		PartsPrice:               decimalToString(o.PartsPrice),
		CostTotal:                decimalToString(o.CostTotal),
		TotalProfit:              decimalToString(o.TotalProfit),
		MasterCommission:         decimalToString(o.MasterCommission),
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		AcceptedAt:               formatTime(o.AcceptedAt),
		CompletedAt:              formatTime(o.CompletedAt),
		CreatedAt:                formatTime(o.CreatedAt),
		UpdatedAt:                formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	lines := make([]entities.LineItem, 0, len(it.Lines))
	for _, l := range it.Lines {
		lines = append(lines, entities.LineItem{
			Kind:            entities.LineItemKind(l.Kind),
			Name:            l.Name,
			UnitPrice:       parseDecimal(l.UnitPrice),
			UnitCost:        parseDecimal(l.UnitCost),
			Quantity:        l.Quantity,
			WarrantyMonths:  l.WarrantyMonths,
			DurationMinutes: l.DurationMinutes,
		})
	}
	return entities.Order{
		ID:                       it.ID,
		LocationID:               it.LocationID,
		ClientID:                 it.ClientID,
		TechnicianID:             it.TechnicianID,
		TechnicianName:           it.TechnicianName,
		LeadSource:               it.LeadSource,
		Status:                   entities.OrderStatus(it.Status),
		Lines:                    lines,
		EstimatedCost:            parseDecimal(it.EstimatedCost),
		FinalCost:                parseDecimal(it.FinalCost),
		Prepayment:               parseDecimal(it.Prepayment),
		ServicePrice:             parseDecimal(it.ServicePrice),
		PartsPrice:               parseDecimal(it.PartsPrice),
		CostTotal:                parseDecimal(it.CostTotal),
		TotalProfit:              parseDecimal(it.TotalProfit),
		MasterCommission:         parseDecimal(it.MasterCommission),
		EstimatedDurationMinutes: it.EstimatedDurationMinutes,
		AcceptedAt:               parseTime(it.AcceptedAt),
		CompletedAt:              parseTime(it.CompletedAt),
		CreatedAt:                parseTime(it.CreatedAt),
		UpdatedAt:                parseTime(it.UpdatedAt),
	}
}
