package voucherControllers

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gobazaar/marketplace-api/models"
	"github.com/gobazaar/marketplace-api/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(codeLength)
	require.NoError(t, err)
	assert.Len(t, code, codeLength)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
	}
	// Ambiguous characters stay out of the alphabet.
	for _, r := range "0O1IL" {
		assert.False(t, strings.ContainsRune(codeAlphabet, r))
	}
}

func TestGenerateUniqueCode_RetriesCollisions(t *testing.T) {
	var attempts int
	code, err := generateUniqueCode(func(string) (bool, error) {
		attempts++
		return attempts < 3, nil // first two collide
	})
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, attempts)
}

func TestGenerateUniqueCode_GivesUpEventually(t *testing.T) {
	var attempts int
	_, err := generateUniqueCode(func(string) (bool, error) {
		attempts++
		return true, nil // everything collides
	})
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, maxCodeAttempts, attempts)
}

func TestGenerateUniqueCode_PropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("db down")
	_, err := generateUniqueCode(func(string) (bool, error) {
		return false, lookupErr
	})
	assert.ErrorIs(t, err, lookupErr)
}

func TestIssue_UniqueCodesUnderConcurrency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "buyer")
	value := decimal.NewFromInt(100)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Issue(db, user.ID, value)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var vouchers []models.Voucher
	require.NoError(t, db.Find(&vouchers).Error)
	require.Len(t, vouchers, n)

	seen := make(map[string]bool, n)
	for _, v := range vouchers {
		assert.False(t, seen[v.Code], "duplicate code %s", v.Code)
		seen[v.Code] = true
		assert.False(t, v.IsUsed)
		require.NotNil(t, v.UserID)
		assert.Equal(t, user.ID, *v.UserID)
	}
}
