// Package redis connects the go-redis client used by the analytics stream
// sink.
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    URL:           "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: 2 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	sink := analytics.NewRedisSink(client, "inapp:events")
//
// Connect fails fast on an empty or malformed URL and returns ErrNotReady
// when the server does not answer PING within the retry budget.
package redis
