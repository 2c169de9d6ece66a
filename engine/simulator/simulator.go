// Package simulator is an in-memory, deterministic implementation of the
// contract execution engine: a pending transaction pool, a block-forging
// loop, an account ledger, a transaction log, and deployed contracts with
// memory and map state.
//
// Contract behavior is supplied by registered Go programs keyed on the
// source's "#program name" pragma; the compile step only interprets the
// preprocessor directives the testbed's initializer injection relies on.
package simulator

import (
	"github.com/rs/zerolog"

	"github.com/ohager/signum-smartc-testbed/engine"
	"github.com/ohager/signum-smartc-testbed/types"
)

// CreatorID is the fixed identity every contract is deployed under.
const CreatorID uint64 = 555

// firstContractAddress is the deployment address of the first contract;
// subsequent deployments count up from it.
const firstContractAddress uint64 = 999_000

// config is the set of simulator options.
type config struct {
	logger   zerolog.Logger
	programs *Registry
}

// Option is a function applying a change to the simulator config.
type Option func(*config)

// WithLogger sets the simulator logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPrograms sets the program registry used to resolve contract source.
func WithPrograms(programs *Registry) Option {
	return func(c *config) {
		c.programs = programs
	}
}

// contract is the simulator-internal state of one deployment.
type contract struct {
	address  uint64
	creator  uint64
	program  Program
	memory   []types.MemoryEntry
	mapStore []types.MapEntry
}

// Simulator holds one independent simulated chain. A fresh Simulator starts
// from an empty ledger at height zero. It is not safe for concurrent use;
// the harness is single-threaded by design.
type Simulator struct {
	logger   zerolog.Logger
	programs *Registry

	height       uint64
	pending      []types.Transaction
	log          []types.Transaction
	accounts     []types.Account
	accountIndex map[uint64]int
	contracts    []*contract
	// index into contracts of the currently selected slot, -1 before the
	// first deployment
	selected int

	nextTxID uint64
}

var _ engine.Engine = (*Simulator)(nil)

// New instantiates a fresh simulated chain with the provided options.
func New(opts ...Option) *Simulator {
	conf := config{
		logger:   zerolog.Nop(),
		programs: defaultRegistry,
	}
	for _, opt := range opts {
		opt(&conf)
	}

	return &Simulator{
		logger:       conf.logger,
		programs:     conf.programs,
		accountIndex: make(map[uint64]int),
		selected:     -1,
	}
}

// SubmitScenario parses a serialized transaction batch and appends it to the
// pending pool in order. Malformed input is rejected with a *RejectionError
// and leaves the pool untouched.
func (s *Simulator) SubmitScenario(serialized string) error {
	scenario, err := DecodeScenario([]byte(serialized))
	if err != nil {
		return &engine.RejectionError{
			Code:        1,
			Description: err.Error(),
		}
	}

	s.pending = append(s.pending, scenario...)

	s.logger.Debug().
		Int("transactions", len(scenario)).
		Msg("scenario appended to pending pool")

	return nil
}

// DeployContract compiles contract source against the program registry and
// deploys a new instance under the fixed creator identity. The new contract
// becomes the currently selected one.
func (s *Simulator) DeployContract(source string) (uint64, error) {
	result, err := compileSource(source, s.programs)
	if err != nil {
		return 0, err
	}

	c := &contract{
		address: firstContractAddress + uint64(len(s.contracts)),
		creator: CreatorID,
		program: result.program,
	}

	// seed memory from the declared globals, applying constant initializers
	for _, name := range result.program.Globals() {
		c.memory = append(c.memory, types.MemoryEntry{
			VarName: name,
			Value:   result.constants[name],
		})
	}

	s.contracts = append(s.contracts, c)
	s.selected = len(s.contracts) - 1
	s.touchAccount(c.address)

	s.logger.Info().
		Str("program", result.name).
		Uint64("address", c.address).
		Msg("contract deployed")

	return c.address, nil
}

// ForgeUntil advances the chain one block at a time until the target height
// is reached. Targets at or below the current height advance nothing.
func (s *Simulator) ForgeUntil(height uint64) (uint64, error) {
	for s.height < height {
		s.forgeBlock()
	}
	return s.height, nil
}

// CurrentHeight returns the height of the last forged block.
func (s *Simulator) CurrentHeight() uint64 {
	return s.height
}

// forgeBlock advances the chain by one block: every pending transaction
// scheduled below the new height is included (txid assigned, balances
// applied), then every deployed contract executes once, in deployment order,
// against the included transactions addressed to it. Transactions a contract
// emits carry the new height and enter the pending pool, so they surface in
// the log one block later.
func (s *Simulator) forgeBlock() {
	height := s.height + 1

	var included []types.Transaction
	remaining := s.pending[:0]
	for _, tx := range s.pending {
		if tx.BlockHeight < height {
			included = append(included, tx)
		} else {
			remaining = append(remaining, tx)
		}
	}
	s.pending = remaining

	for i := range included {
		tx := &included[i]
		s.nextTxID++
		tx.TxID = s.nextTxID
		s.adjustBalance(tx.Sender, -tx.Amount)
		s.adjustBalance(tx.Recipient, tx.Amount)
		s.log = append(s.log, *tx)
	}

	for _, c := range s.contracts {
		var incoming []types.Transaction
		for _, tx := range included {
			if tx.Recipient == c.address {
				incoming = append(incoming, tx)
			}
		}
		env := &execEnv{sim: s, contract: c, height: height}
		c.program.Execute(env, incoming)
	}

	s.height = height

	s.logger.Debug().
		Uint64("height", height).
		Int("included", len(included)).
		Msg("block forged")
}

// Contracts returns all deployed contracts in deployment order, with memory
// snapshots copied out of the simulator.
func (s *Simulator) Contracts() []types.Contract {
	contracts := make([]types.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		memory := make([]types.MemoryEntry, len(c.memory))
		copy(memory, c.memory)
		contracts = append(contracts, types.Contract{
			Address: c.address,
			Creator: c.creator,
			Memory:  memory,
		})
	}
	return contracts
}

// Accounts returns the account ledger in order of first activity.
func (s *Simulator) Accounts() []types.Account {
	accounts := make([]types.Account, len(s.accounts))
	copy(accounts, s.accounts)
	return accounts
}

// Transactions returns the transaction log in inclusion order.
func (s *Simulator) Transactions() []types.Transaction {
	log := make([]types.Transaction, len(s.log))
	copy(log, s.log)
	return log
}

// MapEntries returns the map store of the given contract in write order. An
// unknown address or a contract that never wrote to its map yields nothing.
func (s *Simulator) MapEntries(address uint64) []types.MapEntry {
	c := s.contractAt(address)
	if c == nil {
		return nil
	}
	entries := make([]types.MapEntry, len(c.mapStore))
	copy(entries, c.mapStore)
	return entries
}

// SelectContract marks the contract at the given address as current,
// reporting whether the address names a deployed contract. An invalid
// address leaves the selection unchanged.
func (s *Simulator) SelectContract(address uint64) bool {
	for i, c := range s.contracts {
		if c.address == address {
			s.selected = i
			return true
		}
	}
	return false
}

func (s *Simulator) contractAt(address uint64) *contract {
	for _, c := range s.contracts {
		if c.address == address {
			return c
		}
	}
	return nil
}

// touchAccount ensures an account exists, creating it with a zero balance.
func (s *Simulator) touchAccount(id uint64) int {
	if idx, ok := s.accountIndex[id]; ok {
		return idx
	}
	s.accounts = append(s.accounts, types.Account{ID: id})
	idx := len(s.accounts) - 1
	s.accountIndex[id] = idx
	return idx
}

func (s *Simulator) adjustBalance(id uint64, delta int64) {
	idx := s.touchAccount(id)
	s.accounts[idx].Balance += delta
}

func (s *Simulator) balanceOf(id uint64) int64 {
	if idx, ok := s.accountIndex[id]; ok {
		return s.accounts[idx].Balance
	}
	return 0
}

// execEnv is the Environment handed to a program during one block execution.
type execEnv struct {
	sim      *Simulator
	contract *contract
	height   uint64
}

var _ Environment = (*execEnv)(nil)

func (e *execEnv) Address() uint64 {
	return e.contract.address
}

func (e *execEnv) Creator() uint64 {
	return e.contract.creator
}

func (e *execEnv) Balance() int64 {
	return e.sim.balanceOf(e.contract.address)
}

func (e *execEnv) Memory(name string) int64 {
	for _, entry := range e.contract.memory {
		if entry.VarName == name {
			return entry.Value
		}
	}
	return 0
}

func (e *execEnv) SetMemory(name string, value int64) {
	for i := range e.contract.memory {
		if e.contract.memory[i].VarName == name {
			e.contract.memory[i].Value = value
			return
		}
	}
	e.contract.memory = append(e.contract.memory, types.MemoryEntry{
		VarName: name,
		Value:   value,
	})
}

func (e *execEnv) MapValue(k1, k2 int64) int64 {
	for _, entry := range e.contract.mapStore {
		if entry.K1 == k1 && entry.K2 == k2 {
			return entry.Value
		}
	}
	return 0
}

func (e *execEnv) SetMapValue(k1, k2, value int64) {
	for i := range e.contract.mapStore {
		if e.contract.mapStore[i].K1 == k1 && e.contract.mapStore[i].K2 == k2 {
			e.contract.mapStore[i].Value = value
			return
		}
	}
	e.contract.mapStore = append(e.contract.mapStore, types.MapEntry{
		K1:    k1,
		K2:    k2,
		Value: value,
	})
}

func (e *execEnv) Send(recipient uint64, amount int64) {
	e.SendMessage(recipient, amount, "")
}

func (e *execEnv) SendMessage(recipient uint64, amount int64, messageHex string) {
	e.sim.pending = append(e.sim.pending, types.Transaction{
		BlockHeight: e.height,
		Amount:      amount,
		Sender:      e.contract.address,
		Recipient:   recipient,
		MessageHex:  messageHex,
	})
}
