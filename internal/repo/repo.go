package repo

import (
	"github.com/GlebRadaev/pointledger/internal/pg"
	coderepo "github.com/GlebRadaev/pointledger/internal/repo/code-repo"
	ledgerrepo "github.com/GlebRadaev/pointledger/internal/repo/ledger-repo"
	memoryrepo "github.com/GlebRadaev/pointledger/internal/repo/memory-repo"
	"github.com/GlebRadaev/pointledger/internal/service/balanceservice"
	"github.com/GlebRadaev/pointledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/pointledger/internal/service/redeemservice"
)

// LedgerRepo is the store behind both the engine and the read side.
type LedgerRepo interface {
	ledgerservice.Repo
	balanceservice.Repo
}

type Repositories struct {
	LedgerRepo LedgerRepo
	CodeRepo   redeemservice.CodeRepo
}

func New(conn pg.Database, txManager pg.TXManager, defaultBalance int64) *Repositories {
	return &Repositories{
		LedgerRepo: ledgerrepo.New(conn, txManager, defaultBalance),
		CodeRepo:   coderepo.New(conn),
	}
}

// NewInMemory keeps all state in process. Nothing survives a restart.
func NewInMemory(defaultBalance int64) *Repositories {
	return &Repositories{
		LedgerRepo: memoryrepo.New(defaultBalance),
		CodeRepo:   memoryrepo.NewCodes(),
	}
}
