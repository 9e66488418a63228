package job

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"fixkaro/models"
	paymentSvc "fixkaro/services/payment"
	"fixkaro/services/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGateway issues deterministic orders without touching the network.
type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, amount float64, receipt string) (*models.PaymentOrder, error) {
	return &models.PaymentOrder{
		OrderID:  "order_" + receipt,
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

func signVerification(secret string, v *models.PaymentVerification) {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(v.OrderID + "|" + v.PaymentID))
	v.Signature = hex.EncodeToString(mac.Sum(nil))
}

// TestElectricianJobEndToEnd walks one job through its whole life: posting,
// a contested accept, arrival, the OTP gate, completion with a final quote,
// and the signed settlement that credits the worker's wallet.
func TestElectricianJobEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	const secret = "rzp_test_secret"
	settlement := &paymentSvc.DefaultSettlementService{
		Gateway:    stubGateway{},
		JobRepo:    env.jobs,
		LedgerRepo: env.ledger,
		Logger:     zap.NewNop(),
		Secret:     secret,
	}

	// The customer posts an electrician job.
	j, err := env.svc.Create("cust-1", CreateJobInput{
		CategoryID:  "cat-electrician",
		Description: "Ceiling fan stopped spinning",
		Address:     "12 MG Road",
	})
	require.NoError(t, err)
	otp := j.OTP

	// Both online electricians see it in their feed.
	for _, workerID := range []string{"worker-1", "worker-2"} {
		feed, err := env.svc.ListAvailable(workerID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, j.ID, feed[0].ID)
	}

	// Both tap accept at once; exactly one wins.
	var wg sync.WaitGroup
	results := make(map[string]error, 2)
	var mu sync.Mutex
	for _, workerID := range []string{"worker-1", "worker-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := env.svc.Accept(j.ID, id)
			mu.Lock()
			results[id] = err
			mu.Unlock()
		}(workerID)
	}
	wg.Wait()

	var winner, loser string
	for id, err := range results {
		if err == nil {
			winner = id
		} else {
			require.ErrorIs(t, err, ErrAlreadyAccepted)
			loser = id
		}
	}
	require.NotEmpty(t, winner, "one accept must succeed")
	require.NotEmpty(t, loser, "one accept must lose")

	// The job leaves the loser's feed.
	feed, err := env.svc.ListAvailable(loser)
	require.NoError(t, err)
	assert.Empty(t, feed)

	// The winner arrives; a wrong code does not start work.
	_, err = env.svc.Arrive(j.ID, winner)
	require.NoError(t, err)

	wrong := "0000"
	if otp == wrong {
		wrong = "1111"
	}
	_, err = env.svc.StartWithOTP(j.ID, winner, wrong)
	require.ErrorIs(t, err, ErrInvalidOTP)

	_, err = env.svc.StartWithOTP(j.ID, winner, otp)
	require.NoError(t, err)

	// Work done, final quote above the base price.
	j2, err := env.svc.Complete(j.ID, winner, 350)
	require.NoError(t, err)
	assert.Equal(t, models.JobCompletedPendingPayment, j2.Status)
	assert.Equal(t, 350.0, j2.Amount)

	// The customer pays: order, then signed settlement.
	order, err := settlement.CreateOrder(context.Background(), j.ID, j2.Amount)
	require.NoError(t, err)

	verification := models.PaymentVerification{
		OrderID:   order.OrderID,
		PaymentID: "pay_e2e_001",
		JobID:     j.ID,
		WorkerID:  winner,
		Amount:    350,
	}
	signVerification(secret, &verification)
	require.NoError(t, settlement.VerifyAndSettle(context.Background(), verification))

	final, err := env.jobs.GetByID(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobCompleted, final.Status)

	// The wallet reflects exactly one credit for the final amount.
	txns, err := env.ledger.ListForWorker(winner)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TxnCredit, txns[0].Type)
	assert.Equal(t, 350.0, txns[0].Amount)
	assert.Equal(t, 350.0, wallet.Fold(txns))

	// Replaying the settlement cannot double-credit.
	err = settlement.VerifyAndSettle(context.Background(), verification)
	require.ErrorIs(t, err, paymentSvc.ErrJobNotPayable)
	txns, _ = env.ledger.ListForWorker(winner)
	assert.Len(t, txns, 1)
}
