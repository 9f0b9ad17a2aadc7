package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbCfg struct {
	DSN string
}

type featureFlags struct {
	Enabled bool
}

func Test_PutAndFreezeAndGet(t *testing.T) {
	b := NewBuilder(nil)
	Put(b, dbCfg{DSN: "postgres://x"})

	store := b.Freeze()

	got, ok := Get[dbCfg](store)
	require.True(t, ok)
	assert.Equal(t, "postgres://x", got.DSN)
}

func Test_GetMissingTypeReturnsFalse(t *testing.T) {
	store := NewBuilder(nil).Freeze()

	_, ok := Get[dbCfg](store)
	assert.False(t, ok)
}

func Test_ZeroValueStoreIsEmpty(t *testing.T) {
	var store *Store

	_, ok := Get[dbCfg](store)
	assert.False(t, ok)
}

func Test_PutTwiceOverwritesLastWriteWins(t *testing.T) {
	b := NewBuilder(nil)
	Put(b, dbCfg{DSN: "first"})
	Put(b, dbCfg{DSN: "second"})

	store := b.Freeze()

	got, ok := Get[dbCfg](store)
	require.True(t, ok)
	assert.Equal(t, "second", got.DSN)
}

func Test_PutAfterFreezePanics(t *testing.T) {
	b := NewBuilder(nil)
	b.Freeze()

	assert.Panics(t, func() { Put(b, dbCfg{DSN: "too late"}) })
}

func Test_ConfigImmutability_SameValueAcrossCalls(t *testing.T) {
	b := NewBuilder(nil)
	Put(b, featureFlags{Enabled: true})

	store := b.Freeze()

	first, _ := Get[featureFlags](store)
	second, _ := Get[featureFlags](store)

	assert.Equal(t, first, second)
}

func Test_DistinctTypesCoexist(t *testing.T) {
	b := NewBuilder(nil)
	Put(b, dbCfg{DSN: "x"})
	Put(b, featureFlags{Enabled: true})

	store := b.Freeze()

	db, ok := Get[dbCfg](store)
	require.True(t, ok)
	assert.Equal(t, "x", db.DSN)

	flags, ok := Get[featureFlags](store)
	require.True(t, ok)
	assert.True(t, flags.Enabled)
}
