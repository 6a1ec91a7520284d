package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eiannone/keyboard"

	"bountyninja/bountyninja"
	"bountyninja/escrow"
)

// cliListener is a cheap and nasty way to speed up development cycles. It listens for keypresses and executes commands.
func cliListener(escrowService *escrow.Service) {
	fmt.Println("Press:\nq: to quit\nw: to print your current wallet\nf: to print observed mint fees\nk: to print the kind table\nSee cliListener.go for more")
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			panic(err)
		}
		str := string(r)
		switch str {
		default:
			if k == 13 {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to any test procedures. See main.cliListener for more details.")
		case "q":
			bountyninja.Shutdown()
			go func() {
				bountyninja.LogCLI("User requested to terminate", 4)
				time.Sleep(time.Second * 10)
				println("Something didn't shutdown cleanly.")
				os.Exit(0)
			}()
			return //if we do not return here, we cannot ctrl+c in case of errors during shutdown
		case "w":
			fmt.Printf("\nWallet:\n%#v\n", bountyninja.MyWallet())
		case "f":
			for _, summary := range escrowService.Fees().Summaries() {
				fmt.Printf("%s: %d swaps, total %d, mean %.1f, median %.1f\n",
					summary.Mint, summary.Swaps, summary.Total, summary.Mean, summary.Median)
			}
		case "k":
			for kind, role := range bountyninja.GetAllKinds() {
				fmt.Printf("Kind: %d Role: %s\n", kind, role)
			}
		case "s":
			//spendability probe against the first trusted mint, mostly for
			//checking connectivity during development
			mints := bountyninja.MakeOrGetConfig().GetStringSlice("mintsTrusted")
			if len(mints) == 0 {
				fmt.Println("no trusted mints configured")
				break
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
			ok, err := escrowService.Spendable(ctx, mints[0], escrow.Proofs{})
			cancel()
			fmt.Printf("mint %s reachable: %v (err: %v)\n", mints[0], ok, err)
		}
	}
}
