// Package bank provides dollar accounts with two synthetic endpoints:
// SOURCE (infinite supply, never decremented) and SINK (absorbs anything).
package bank

import (
	"errors"
	"fmt"
)

// Account names. PlayerAccount is the only real account seeded at game
// start; Source and Sink are synthetic and carry no balance.
const (
	PlayerAccount = "$PLAYER"
	Source        = "$SOURCE"
	Sink          = "$SINK"
)

// DefaultPlayerBalance is the player's starting balance in 1860 dollars.
const DefaultPlayerBalance = 7.25

var (
	// ErrInsufficientFunds is returned when a withdrawal would take a
	// balance negative. The caller must abort the whole transaction.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccount is returned for operations that reference an
	// unknown account, or balance operations on SOURCE/SINK.
	ErrInvalidAccount = errors.New("invalid bank account")
)

// Bank maps account names to dollar balances.
type Bank map[string]float64

// Seed returns a fresh bank holding only the player's starting balance.
func Seed() Bank {
	return Bank{PlayerAccount: DefaultPlayerBalance}
}

// Balance returns an account's balance. SOURCE and SINK have no
// meaningful balance and cannot be queried.
func (b Bank) Balance(account string) (float64, error) {
	if account == Source || account == Sink {
		return 0, fmt.Errorf("%w: cannot get balance of %s", ErrInvalidAccount, account)
	}
	balance, ok := b[account]
	if !ok {
		return 0, fmt.Errorf("%w: no account %q", ErrInvalidAccount, account)
	}
	return balance, nil
}

// Withdraw removes amount from an account. Withdrawing from SOURCE always
// succeeds and changes nothing.
func (b Bank) Withdraw(account string, amount float64) error {
	if account == Source {
		return nil
	}
	balance, err := b.Balance(account)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %q has $%.2f, need $%.2f", ErrInsufficientFunds, account, balance, amount)
	}
	b[account] = balance - amount
	return nil
}

// Deposit adds amount to an account. Depositing into SINK discards the
// money; depositing into SOURCE is rejected.
func (b Bank) Deposit(account string, amount float64) error {
	if account == Sink {
		return nil
	}
	if account == Source {
		return fmt.Errorf("%w: cannot deposit into %s", ErrInvalidAccount, Source)
	}
	if amount < 0 {
		return fmt.Errorf("%w: cannot deposit negative amount $%.2f into %q", ErrInvalidAccount, amount, account)
	}
	balance, err := b.Balance(account)
	if err != nil {
		return err
	}
	b[account] = balance + amount
	return nil
}

// Transfer withdraws from src and deposits into dst. Both ends are
// validated before either balance moves, so a failure leaves the bank
// untouched.
func (b Bank) Transfer(src, dst string, amount float64) error {
	if dst == Source {
		return fmt.Errorf("%w: cannot deposit into %s", ErrInvalidAccount, Source)
	}
	if amount < 0 {
		return fmt.Errorf("%w: cannot transfer negative amount $%.2f", ErrInvalidAccount, amount)
	}
	if dst != Sink {
		if _, err := b.Balance(dst); err != nil {
			return err
		}
	}
	if err := b.Withdraw(src, amount); err != nil {
		return err
	}
	return b.Deposit(dst, amount)
}

// Clone returns an independent copy of the bank.
func (b Bank) Clone() Bank {
	out := make(Bank, len(b))
	for account, balance := range b {
		out[account] = balance
	}
	return out
}
