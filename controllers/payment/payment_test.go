package paymentControllers

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gobazaar/marketplace-api/models"
	"github.com/gobazaar/marketplace-api/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubVerifier classifies every payload the same way.
type stubVerifier struct {
	ok bool
}

func (s *stubVerifier) Verify(map[string]string) bool { return s.ok }

func stubRegistry(ok bool) VerifierRegistry {
	return VerifierRegistry{
		models.GatewayRazorpay: &stubVerifier{ok: ok},
		models.GatewayPayU:     &stubVerifier{ok: ok},
	}
}

func createOrder(t *testing.T, db *gorm.DB, userID string, total string) *models.Order {
	t.Helper()
	amount, err := decimal.NewFromString(total)
	require.NoError(t, err)
	order := &models.Order{
		UserID:        userID,
		Subtotal:      amount,
		GSTAmount:     decimal.Zero,
		Total:         amount,
		Status:        models.OrderStatusCreated,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestNewTransactionID(t *testing.T) {
	id := NewTransactionID(models.GatewayRazorpay)
	assert.True(t, strings.HasPrefix(id, "RAZORPAY_"), "id = %s", id)
	assert.Len(t, id, len("RAZORPAY_")+12)

	assert.NotEqual(t, id, NewTransactionID(models.GatewayRazorpay))
}

func TestInitiate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "236.00")

	resp, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	require.NoError(t, err)

	assert.Equal(t, order.ID, resp.OrderID)
	assert.Equal(t, "236.00", resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "RAZORPAY_"))
	assert.Equal(t, resp.TransactionID, resp.GatewayData["razorpay_order_id"])

	var txn models.PaymentTransaction
	require.NoError(t, db.Where("transaction_id = ?", resp.TransactionID).First(&txn).Error)
	assert.Equal(t, models.TransactionInitiated, txn.Status)
	assert.True(t, txn.Amount.Equal(order.Total))

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusProcessing, got.PaymentStatus)
	assert.Equal(t, "razorpay", got.PaymentMethod)
	assert.Equal(t, resp.TransactionID, got.PaymentTransactionID)
}

func TestInitiate_OrderNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	other := testutil.CreateUser(t, db, "other")
	order := createOrder(t, db, other.ID, "10.00")

	// Someone else's order is indistinguishable from a missing one.
	_, err := Initiate(db, buyer.ID, order.ID, models.GatewayPayU)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestInitiate_AlreadyCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "50.00")
	require.NoError(t, db.Model(order).Update("payment_status", models.PaymentStatusCompleted).Error)

	_, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	assert.ErrorIs(t, err, ErrPaymentCompleted)

	var count int64
	db.Model(&models.PaymentTransaction{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count, "no transaction may be created for a paid order")
}

func TestHandleCallback_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "100.00")
	resp, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	require.NoError(t, err)

	payload := map[string]string{"transaction_id": resp.TransactionID}
	raw := []byte(`{"transaction_id":"` + resp.TransactionID + `"}`)

	result, err := HandleCallback(db, stubRegistry(true), models.GatewayRazorpay, payload, raw)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionSuccess, result.Status)
	assert.False(t, result.AlreadyProcessed)

	var txn models.PaymentTransaction
	require.NoError(t, db.Where("transaction_id = ?", resp.TransactionID).First(&txn).Error)
	assert.Equal(t, models.TransactionSuccess, txn.Status)
	assert.Equal(t, string(raw), txn.GatewayResponse, "raw payload kept for audit")

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestHandleCallback_Failure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "100.00")
	resp, err := Initiate(db, buyer.ID, order.ID, models.GatewayPayU)
	require.NoError(t, err)

	payload := map[string]string{"txnid": resp.TransactionID}
	result, err := HandleCallback(db, stubRegistry(false), models.GatewayPayU, payload, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionFailed, result.Status)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)
	// A failed payment does not move the order itself.
	assert.Equal(t, models.OrderStatusCreated, got.Status)
}

func TestHandleCallback_TransactionNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := HandleCallback(db, stubRegistry(true), models.GatewayRazorpay,
		map[string]string{"transaction_id": "RAZORPAY_missing000000"}, []byte(`{}`))
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	var count int64
	db.Model(&models.Order{}).Where("payment_status <> ?", models.PaymentStatusPending).Count(&count)
	assert.Zero(t, count, "no order may be mutated")
}

func TestHandleCallback_DuplicateIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "100.00")
	resp, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	require.NoError(t, err)

	payload := map[string]string{"transaction_id": resp.TransactionID}
	_, err = HandleCallback(db, stubRegistry(true), models.GatewayRazorpay, payload, []byte(`{"n":1}`))
	require.NoError(t, err)

	// A replay — even one that would now fail verification — changes nothing.
	result, err := HandleCallback(db, stubRegistry(false), models.GatewayRazorpay, payload, []byte(`{"n":2}`))
	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)
	assert.Equal(t, models.TransactionSuccess, result.Status)

	var txn models.PaymentTransaction
	require.NoError(t, db.Where("transaction_id = ?", resp.TransactionID).First(&txn).Error)
	assert.Equal(t, models.TransactionSuccess, txn.Status)
	assert.Equal(t, `{"n":1}`, txn.GatewayResponse, "audit payload must not be overwritten")

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestHandleCallback_ConcurrentDuplicatesApplyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "100.00")
	resp, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	require.NoError(t, err)

	// The same notification delivered n times at once: the row lock must let
	// exactly one callback apply side effects.
	const n = 8
	payload := map[string]string{"transaction_id": resp.TransactionID}
	results := make([]*CallbackResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := []byte(`{"attempt":` + strconv.Itoa(i) + `}`)
			results[i], errs[i] = HandleCallback(db, stubRegistry(true), models.GatewayRazorpay, payload, raw)
		}(i)
	}
	wg.Wait()

	winner := -1
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, models.TransactionSuccess, results[i].Status)
		if !results[i].AlreadyProcessed {
			require.Equal(t, -1, winner, "more than one callback applied side effects")
			winner = i
		}
	}
	require.NotEqual(t, -1, winner)

	var txn models.PaymentTransaction
	require.NoError(t, db.Where("transaction_id = ?", resp.TransactionID).First(&txn).Error)
	assert.Equal(t, models.TransactionSuccess, txn.Status)
	assert.Equal(t, `{"attempt":`+strconv.Itoa(winner)+`}`, txn.GatewayResponse,
		"audit payload must belong to the callback that won")

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	buyer := testutil.CreateUser(t, db, "buyer")
	order := createOrder(t, db, buyer.ID, "75.00")

	first, err := Initiate(db, buyer.ID, order.ID, models.GatewayPayU)
	require.NoError(t, err)
	_, err = HandleCallback(db, stubRegistry(false), models.GatewayPayU,
		map[string]string{"txnid": first.TransactionID}, []byte(`{}`))
	require.NoError(t, err)

	second, err := Initiate(db, buyer.ID, order.ID, models.GatewayRazorpay)
	require.NoError(t, err)

	status, err := Status(db, buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusProcessing, status.PaymentStatus)
	assert.Equal(t, models.OrderStatusCreated, status.OrderStatus)
	require.Len(t, status.Transactions, 2)
	// Most recent attempt first.
	assert.Equal(t, second.TransactionID, status.Transactions[0].TransactionID)
	assert.Equal(t, first.TransactionID, status.Transactions[1].TransactionID)

	_, err = Status(db, "someone-else", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
