package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/primefeed/snipebot/internal/telemetry"
	"github.com/primefeed/snipebot/internal/wallet"
)

// Fixed gas ceilings instead of estimation; over-allocates but saves a
// round trip per submission.
const (
	SwapGasLimit    = 3_000_000
	ApproveGasLimit = 100_000
)

// ErrSubmissionRejected means the user declined the transaction in the
// wallet UI.
var ErrSubmissionRejected = errors.New("trade: submission rejected")

// Submitter hands envelopes to the wallet provider for signing and
// broadcast. Blocking until the wallet answers; never retries.
type Submitter struct {
	provider wallet.Provider
}

func NewSubmitter(provider wallet.Provider) *Submitter {
	return &Submitter{provider: provider}
}

func (s *Submitter) Submit(ctx context.Context, env wallet.Envelope) (common.Hash, error) {
	hash, err := s.provider.SendTransaction(ctx, env)
	if err != nil {
		if errors.Is(err, wallet.ErrRejected) {
			return common.Hash{}, fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
		}
		return common.Hash{}, err
	}

	telemetry.Debugf("[trade] submitted tx %s to %s", hash.Hex(), env.To.Hex())
	return hash, nil
}
