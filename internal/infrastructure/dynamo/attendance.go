package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hrms-lite/api/internal/domain"
)

// AttendanceRepo provides typed DynamoDB operations for the attendance table.
// PK: employee_id, SK: date — PutItem naturally enforces one record per
// employee per day.
type AttendanceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAttendanceRepo(client *dynamodb.Client, tableName string) *AttendanceRepo {
	return &AttendanceRepo{client: client, tableName: tableName}
}

func (r *AttendanceRepo) Put(ctx context.Context, a *domain.Attendance) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal attendance: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// UpdateStatus rewrites the status of an existing record in place, leaving
// created_at untouched.
func (r *AttendanceRepo) UpdateStatus(ctx context.Context, employeeID, date, status string, updatedAt time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"status":     status,
		"updated_at": updatedAt,
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("employee_id", employeeID, "date", date),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AttendanceRepo) Get(ctx context.Context, employeeID, date string) (*domain.Attendance, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("employee_id", employeeID, "date", date),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("attendance not found: %w", domain.ErrNotFound)
	}
	var a domain.Attendance
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByEmployee returns all records for one employee, newest date first
// (descending sort key order).
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("employee_id = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":e": &types.AttributeValueMemberS{Value: employeeID}},
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var records []domain.Attendance
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByDate returns all records for one calendar day via the date-index GSI.
func (r *AttendanceRepo) ListByDate(ctx context.Context, date string) ([]domain.Attendance, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("date-index"),
		KeyConditionExpression:    aws.String("#d = :d"),
		ExpressionAttributeNames:  map[string]string{"#d": "date"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":d": &types.AttributeValueMemberS{Value: date}},
	})
	if err != nil {
		return nil, err
	}
	var records []domain.Attendance
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll returns the full attendance history.
func (r *AttendanceRepo) ListAll(ctx context.Context) ([]domain.Attendance, error) {
	var records []domain.Attendance
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Attendance
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		records = append(records, page...)
		if out.LastEvaluatedKey == nil {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
