package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"sideslacker/internal/domain"
)

const (
	skState           = "STATE#"
	defaultSessionTTL = time.Hour
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Client wraps a DynamoDB table holding one state item per conversation.
// The TTL is a garbage-collection backstop for sessions the platform
// never formally ends; the live lifecycle is a Delete on session end.
type Client struct {
	api        dynamodbAPI
	tableName  string
	sessionTTL time.Duration
}

// New creates a new session store Client. A non-positive ttl falls back
// to the default.
func New(api dynamodbAPI, tableName string, ttl time.Duration) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Client{api: api, tableName: tableName, sessionTTL: ttl}, nil
}

// sessionPK returns the DynamoDB partition key for a conversation.
func sessionPK(sessionID string) string {
	return "SESSION#" + sessionID
}

func (c *Client) ttlValue() int64 {
	return time.Now().Add(c.sessionTTL).Unix()
}

func (c *Client) stateKey(sessionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
		"SK": &types.AttributeValueMemberS{Value: skState},
	}
}

// Get reads the conversation's stored attributes. A conversation without
// a stored item resolves to the zero state.
func (c *Client) Get(ctx context.Context, sessionID string) (domain.SessionState, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		Key:            c.stateKey(sessionID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("repository: Get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.SessionState{}, nil
	}

	state, err := itemToState(out.Item)
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("repository: Get decode: %w", err)
	}
	return state, nil
}

// Save overwrites the conversation's stored attributes.
func (c *Client) Save(ctx context.Context, sessionID string, state domain.SessionState) error {
	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      c.stateItem(sessionID, state),
	})
	if err != nil {
		return fmt.Errorf("repository: Save: %w", err)
	}
	return nil
}

// Delete drops the conversation's stored attributes. Deleting a session
// that never stored anything is not an error.
func (c *Client) Delete(ctx context.Context, sessionID string) error {
	_, err := c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key:       c.stateKey(sessionID),
	})
	if err != nil {
		return fmt.Errorf("repository: Delete: %w", err)
	}
	return nil
}

func (c *Client) stateItem(sessionID string, state domain.SessionState) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
		"SK":        &types.AttributeValueMemberS{Value: skState},
		"sessionId": &types.AttributeValueMemberS{Value: sessionID},
		"recipient": &types.AttributeValueMemberS{Value: state.Recipient},
		"requester": &types.AttributeValueMemberS{Value: state.Requester},
		"updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		"ttl":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", c.ttlValue())},
	}
}

// itemToState converts a DynamoDB attribute map to a SessionState.
func itemToState(item map[string]types.AttributeValue) (domain.SessionState, error) {
	recipient, err := strAttr(item, "recipient")
	if err != nil {
		return domain.SessionState{}, err
	}
	requester, err := strAttr(item, "requester")
	if err != nil {
		return domain.SessionState{}, err
	}
	return domain.SessionState{Recipient: recipient, Requester: requester}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
