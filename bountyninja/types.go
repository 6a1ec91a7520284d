package bountyninja

type Account = string

type S256Hash = string

type Sats = int64

type Wallet struct {
	PrivateKey string
	SeedWords  string
	Account    Account
}
