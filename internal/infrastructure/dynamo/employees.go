package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hrms-lite/api/internal/domain"
)

// EmployeeRepo provides typed DynamoDB operations for the employees table.
type EmployeeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEmployeeRepo(client *dynamodb.Client, tableName string) *EmployeeRepo {
	return &EmployeeRepo{client: client, tableName: tableName}
}

func (r *EmployeeRepo) Put(ctx context.Context, e *domain.Employee) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal employee: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *EmployeeRepo) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("employee_id", employeeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	var e domain.Employee
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) GetByCode(ctx context.Context, code string) (*domain.Employee, error) {
	return r.queryGSI(ctx, "employee_code-index", "employee_code", code)
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

// Scan returns all employees. The roster is small by design; pagination is
// handled by looping over LastEvaluatedKey.
func (r *EmployeeRepo) Scan(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Employee
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		employees = append(employees, page...)
		if out.LastEvaluatedKey == nil {
			return employees, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// Count returns the number of employee records without transferring items.
func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *EmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("employee_id", employeeID),
	})
	return err
}

func (r *EmployeeRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Employee, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	var e domain.Employee
	if err := attributevalue.UnmarshalMap(out.Items[0], &e); err != nil {
		return nil, err
	}
	return &e, nil
}
