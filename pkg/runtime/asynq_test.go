package runtime

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

func TestTaskID(t *testing.T) {
	cases := []struct {
		Name   string
		Given  *structs.Change
		Expect string
	}{
		{"JobInsert", &structs.Change{Kind: structs.KindJob, Op: structs.OpInsert, ID: "abc"}, "job:abc:insert"},
		{"HealthUpdate", &structs.Change{Kind: structs.KindHealth, Op: structs.OpUpdate, ID: "ping"}, "health:ping:update"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, taskID(c.Given))
		})
	}
}

func TestTaskRoundTrip(t *testing.T) {
	given := &structs.Change{
		Kind: structs.KindJob,
		Op:   structs.OpInsert,
		ID:   "abc",
		Job:  &structs.Job{ID: "abc", Status: structs.PROCESSING, Prompt: "owl", Style: structs.StyleMascot},
	}

	task, err := newTask(given)
	assert.Nil(t, err)
	assert.Equal(t, "logogen:job", task.Type())

	result, err := decodeTask(task)
	assert.Nil(t, err)
	assert.Equal(t, given, result)
}

func TestNewTaskNil(t *testing.T) {
	_, err := newTask(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}

func TestDecodeTaskBadPayload(t *testing.T) {
	_, err := decodeTask(asynq.NewTask("logogen:job", []byte("{")))
	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}

func TestRedisConn(t *testing.T) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	cases := []struct {
		Name      string
		Given     *Options
		ExpectErr error
		ExpectTLS bool
	}{
		{"NoURL", &Options{}, errors.ErrInvalidArg, false},
		{"BadScheme", &Options{URL: "http://localhost:6379"}, errors.ErrInvalidArg, false},
		{"Plain", &Options{URL: "redis://localhost:6379/0"}, nil, false},
		{"WithTLS", &Options{URL: "redis://localhost:6379/0", TLSConfig: cfg}, nil, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			conn, err := redisConn(c.Given)

			assert.ErrorIs(t, err, c.ExpectErr)
			if err != nil {
				return
			}
			opt, ok := conn.(asynq.RedisClientOpt)
			assert.True(t, ok)
			assert.Equal(t, "localhost:6379", opt.Addr)
			assert.Equal(t, c.ExpectTLS, opt.TLSConfig != nil)
		})
	}
}

func TestNewAsynqRuntimeDefaults(t *testing.T) {
	rt, err := NewAsynqRuntime(&Options{URL: "redis://localhost:6379"}, zerolog.Nop())
	assert.Nil(t, err)
	defer rt.Close()

	assert.Equal(t, defConcurrency, rt.opts.Concurrency)
	assert.Equal(t, defInvocationTimeout, rt.opts.InvocationTimeout)
	assert.Equal(t, defRetention, rt.opts.Retention)
}

func TestTaskOptions(t *testing.T) {
	ch := &structs.Change{Kind: structs.KindJob, Op: structs.OpInsert, ID: "abc"}
	opts := &Options{InvocationTimeout: 2 * time.Minute, Retention: time.Hour}

	result := map[asynq.OptionType]interface{}{}
	for _, o := range taskOptions(ch, opts) {
		result[o.Type()] = o.Value()
	}

	assert.Equal(t, asyncWorkQueue, result[asynq.QueueOpt])
	assert.Equal(t, "job:abc:insert", result[asynq.TaskIDOpt])
	assert.Equal(t, 0, result[asynq.MaxRetryOpt])
	assert.Equal(t, 2*time.Minute, result[asynq.TimeoutOpt])
	// without retention the id is freed on completion & a replay would run again
	assert.Equal(t, time.Hour, result[asynq.RetentionOpt])
}
