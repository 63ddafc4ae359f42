package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJob(t *testing.T) {
	m, err := DecodeJob([]byte(`{"job_id":"01J0ABCDEF"}`))
	require.NoError(t, err)
	assert.Equal(t, "01J0ABCDEF", m.JobID)

	_, err = DecodeJob([]byte(`{}`))
	require.Error(t, err)

	_, err = DecodeJob([]byte(`not json`))
	require.Error(t, err)
}

func TestQueueNames(t *testing.T) {
	assert.Equal(t, "lead_notifications.retry", RetryQueue("lead_notifications"))
	assert.Equal(t, "lead_notifications.dlq", DeadQueue("lead_notifications"))
}
