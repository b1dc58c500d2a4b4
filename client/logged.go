package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/wpapi/apierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggedClient logs one record per call and forwards results and errors
// unchanged. Set the success level before sharing the client across
// goroutines.
type LoggedClient struct {
	verbs
	inner  Client
	logger *zap.Logger

	mu           sync.RWMutex
	successLevel Level
}

// NewLoggedClient wraps inner. Successful calls are logged at info.
func NewLoggedClient(inner Client, logger *zap.Logger) *LoggedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &LoggedClient{
		inner:        inner,
		logger:       logger,
		successLevel: LevelInfo,
	}
	c.verbs = verbs{request: c.Request}
	return c
}

// SetSuccessfulRequestLevel changes the level used for successful calls
func (c *LoggedClient) SetSuccessfulRequestLevel(level Level) error {
	parsed, err := ParseLevel(string(level))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.successLevel = parsed
	return nil
}

// SuccessfulRequestLevel returns the level used for successful calls
func (c *LoggedClient) SuccessfulRequestLevel() Level {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.successLevel
}

// Request forwards to the wrapped client and logs the outcome
func (c *LoggedClient) Request(ctx context.Context, method, uri string, data Data, query Query) (Result, error) {
	msg := fmt.Sprintf("[API] Call \"%s %s\"", method, uri)
	req := zap.Object("request", requestLog{method: method, uri: uri, data: data, query: query})

	result, err := c.inner.Request(ctx, method, uri, data, query)
	if err != nil {
		level := LevelError
		if apierr.IsNotFound(err) {
			level = LevelWarning
		}
		c.log(level, msg, req,
			zap.String("kind", apierr.KindOf(err).String()),
			zap.NamedError("failure", err),
		)
		return result, err
	}

	c.log(c.SuccessfulRequestLevel(), msg, req, zap.Any("result", result.Value()))
	return result, nil
}

func (c *LoggedClient) log(level Level, msg string, fields ...zap.Field) {
	if ce := c.logger.Check(level.ZapLevel(), msg); ce != nil {
		ce.Write(append(fields, zap.String("severity", string(level)))...)
	}
}

type requestLog struct {
	method string
	uri    string
	data   Data
	query  Query
}

func (r requestLog) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("method", r.method)
	enc.AddString("uri", r.uri)
	if err := enc.AddObject("data", dataLog(r.data)); err != nil {
		return err
	}
	return enc.AddObject("query", queryLog(r.query))
}

// dataLog replaces uploads with a path placeholder
type dataLog Data

func (d dataLog) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, v := range d {
		if f, ok := v.(FileSource); ok {
			enc.AddString(k, "[FILE] "+f.Path())
			continue
		}
		if err := enc.AddReflected(k, v); err != nil {
			return err
		}
	}
	return nil
}

type queryLog Query

func (q queryLog) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, v := range q {
		enc.AddString(k, v)
	}
	return nil
}
