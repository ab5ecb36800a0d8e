package tradejournal

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tradejournal/pkg/ledger"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.lock(lotKey(1, 2))
			defer unlock()
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("expected exclusive access, saw %d holders", maxInside)
	}
	if k.size() != 0 {
		t.Errorf("expected lock table to drain, got %d", k.size())
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := newKeyedMutex()
	unlockLot := k.lock(lotKey(1, 2))
	defer unlockLot()

	done := make(chan struct{})
	go func() {
		unlock := k.lock(walletKey(1))
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wallet lock blocked behind lot lock")
	}
}

func TestFromLedgerClassification(t *testing.T) {
	tests := []struct {
		err  error
		code ErrorCode
	}{
		{ledger.ErrEmptyLot, ErrCodeEmptyLot},
		{ledger.ErrOversell, ErrCodeOversell},
		{ledger.ErrEmptyWallet, ErrCodeEmptyWallet},
		{ledger.ErrInsufficientBalance, ErrCodeInsufficientFund},
		{ledger.ErrInvalidAmount, ErrCodeValidation},
		{errors.New("boom"), ErrCodeInternal},
	}
	for _, tt := range tests {
		err := fromLedger(tt.err)
		if CodeOf(err) != tt.code {
			t.Errorf("fromLedger(%v) code = %s, want %s", tt.err, CodeOf(err), tt.code)
		}
		if !errors.Is(err, tt.err) {
			t.Errorf("fromLedger(%v) must wrap the original error", tt.err)
		}
	}
	wrapped := fmt.Errorf("outer: %w", NewError(ErrCodeNotFound, "missing"))
	if !IsErrorCode(wrapped, ErrCodeNotFound) {
		t.Error("IsErrorCode must see through wrapping")
	}
	if CodeOf(errors.New("plain")) != ErrCodeInternal {
		t.Error("plain errors classify as internal")
	}
}
