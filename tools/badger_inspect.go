package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"chat-client/domain"
)

// Small maintenance tool: dumps the local key-value store (credentials,
// expiry, preferences) without starting the client. Token material is
// truncated so the output is safe to paste into a bug report.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Value"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append([]string{key, render(key, v)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func render(key string, value []byte) string {
	if key != "authUser" {
		return string(value)
	}

	var bundle domain.CredentialBundle
	if err := json.Unmarshal(value, &bundle); err != nil {
		return fmt.Sprintf("<corrupt: %v>", err)
	}
	return fmt.Sprintf("user=%s (%s) access=%s... refresh=%s...",
		bundle.User.Name, bundle.User.Email,
		truncate(bundle.AccessToken), truncate(bundle.RefreshToken))
}

func truncate(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
