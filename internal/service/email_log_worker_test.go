package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/repository"
)

func TestEmailLogWorker_FlushesOnClose(t *testing.T) {
	gormDB := newTestDB(t)
	worker := NewEmailLogWorker(repository.NewEmailLogRepository(gormDB))

	for i := 0; i < 3; i++ {
		worker.Record(context.Background(), model.EmailLog{
			Recipient: "a@x.com",
			Kind:      model.EmailKindOtp,
			Status:    model.EmailStatusSent,
		})
	}
	worker.Close()

	var count int64
	require.NoError(t, gormDB.Model(&model.EmailLog{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	// Entries after Close are written synchronously.
	worker.Record(context.Background(), model.EmailLog{Recipient: "b@x.com", Kind: model.EmailKindOrderStatus, Status: model.EmailStatusFailed})
	require.NoError(t, gormDB.Model(&model.EmailLog{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
