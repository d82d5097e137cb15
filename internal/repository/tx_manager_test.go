package repository

import (
	"context"
	"errors"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTxRollsBack(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	repo := NewCustomerRepository(db)
	boom := errors.New("boom")

	err := tm.RunInTx(context.Background(), func(txCtx context.Context) error {
		if err := repo.Create(txCtx, &model.Customer{Name: "Budi"}); err != nil {
			return err
		}
		return tm.RunInTx(txCtx, func(inner context.Context) error {
			if err := repo.Create(inner, &model.Customer{Name: "Siti"}); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	_, total, err := repo.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunInTxCommits(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	repo := NewCustomerRepository(db)

	require.NoError(t, tm.RunInTx(context.Background(), func(txCtx context.Context) error {
		return repo.Create(txCtx, &model.Customer{Name: "Budi"})
	}))

	_, total, err := repo.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
