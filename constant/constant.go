// file: fpmine/constant/constant.go
package constant

import "errors"

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrBadRequest      = errors.New("invalid request")
	ErrNotFound        = errors.New("resource not found")
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrEmptyDataset    = errors.New("dataset has no transactions")
	ErrInvalidSupport  = errors.New("minimum support must be a positive integer")
	ErrRunNotFound     = errors.New("run not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoInput         = errors.New("either a dataset or transactions are required")
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrBusNotConnected = errors.New("bus is not connected")
	ErrStoreDisabled   = errors.New("run store is disabled")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	DefaultConfigFile = "./fpmine.json"
	EnvConfigPath     = "FP_CONFIG"
	EnvPrefix         = "FP_"
	DefaultDataDir    = "./_data/datasets"
	DefaultDBFile     = "./_data/fpmine.db"
	DefaultHTTPAddr   = ":8080"
	DefaultNatsURL    = "nats://127.0.0.1:4222"
	DefaultSubject    = "fpmine.itemsets"
	DefaultMinSupport = 2
)

// ----------------------------------------------------
// Message types
// ----------------------------------------------------

const (
	MessageTypeItemset = "itemset"
	MessageTypeDone    = "done"
	MessageTypeError   = "error"
)

// ----------------------------------------------------
// Health status
// ----------------------------------------------------

const (
	StatusOK       = 0
	StatusWarning  = 1
	StatusCritical = 2

	StoreKey   = "store"
	BusKey     = "bus"
	DataDirKey = "data_dir"
)

// ----------------------------------------------------
// Body keys (standardized)
// ----------------------------------------------------

const (
	BodyKeyError  = "error"
	BodyKeyResult = "result"
	BodyKeyToken  = "token"
)

// ----------------------------------------------------
// Misc
// ----------------------------------------------------

const (
	AppName = "fpmine"

	// RoleAdmin may mine and read runs; RoleReader may only read.
	RoleAdmin  = "admin"
	RoleReader = "reader"
)
