package utils

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"

	"github.com/ohager/signum-smartc-testbed/types"
)

// PrintTransaction logs one transaction from the chain log.
func PrintTransaction(logger *zerolog.Logger, tx types.Transaction) {
	logger.Info().
		Uint64("height", tx.BlockHeight).
		Uint64("sender", tx.Sender).
		Uint64("recipient", tx.Recipient).
		Int64("amount", tx.Amount).
		Msgf("%s %s", logPrefix("TX", tx.TxID, aurora.BlueFg), formatAmount(tx.Amount))

	if tx.MessageHex != "" {
		logger.Debug().Msgf(
			"%s message %s",
			logPrefix("TX", tx.TxID, aurora.BlueFg),
			tx.MessageHex,
		)
	}
}

// PrintAccount logs one ledger account.
func PrintAccount(logger *zerolog.Logger, account types.Account) {
	logger.Info().
		Uint64("id", account.ID).
		Int64("balance", account.Balance).
		Msgf("%s %s", logPrefix("ACC", account.ID, aurora.GreenFg), formatAmount(account.Balance))
}

// PrintContract logs a contract's memory snapshot and map entries.
func PrintContract(logger *zerolog.Logger, contract types.Contract, mapEntries []types.MapEntry) {
	logger.Info().
		Uint64("creator", contract.Creator).
		Msgf("%s deployed contract", logPrefix("SC", contract.Address, aurora.MagentaFg))

	for _, entry := range contract.Memory {
		logger.Info().Msgf(
			"%s %s = %d",
			logPrefix("MEM", contract.Address, aurora.CyanFg),
			entry.VarName,
			entry.Value,
		)
	}

	for _, entry := range mapEntries {
		logger.Info().Msgf(
			"%s (%d, %d) = %d",
			logPrefix("MAP", contract.Address, aurora.YellowFg),
			entry.K1,
			entry.K2,
			entry.Value,
		)
	}
}

func formatAmount(amount int64) string {
	whole := amount / types.PlanckPerSigna
	frac := amount % types.PlanckPerSigna
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%08d SIGNA", whole, frac)
}

func logPrefix(prefix string, id uint64, color aurora.Color) string {
	prefix = aurora.Colorize(prefix, color|aurora.BoldFm).String()
	shortID := aurora.Colorize(fmt.Sprintf("[%d]", id), aurora.FaintFm).String()
	return fmt.Sprintf("%s %s", prefix, shortID)
}
