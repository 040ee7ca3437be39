package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/finassist/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "x: 1")

	file, err := FindFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = FindFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFile_ConfigSubdirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	writeFile(t, filepath.Join(dir, "config", "rules.yaml"), "rules: []")
	t.Chdir(dir)

	file, err := FindFile("rules.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "rules.yaml"), file)
}

const snapshotYAML = `transactions:
  - id: t1
    description: Groceries
    amount: -100
    type: EXPENSE
    date: "2026-02-10"
    accountId: cc1
  - id: t2
    description: Gas
    amount: -50
    type: EXPENSE
    date: "2026-02-12"
    accountType: CHECKING
accounts:
  - id: cc1
    type: CREDIT_CARD
    balance: -200
    creditLimit: 5000
  - id: chk1
    type: CHECKING
    balance: 800
subscriptions:
  - name: Weekly
    amount: 10
    billingCycle: WEEKLY
    nextBillingDate: "2026-02-20"
`

func TestLoadSnapshot_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeFile(t, path, snapshotYAML)

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)

	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, "Groceries", snap.Transactions[0].Description)
	assert.Equal(t, -100.0, snap.Transactions[0].Amount)
	assert.Equal(t, models.TransactionTypeExpense, snap.Transactions[0].Type)
	assert.Equal(t, "2026-02-10", snap.Transactions[0].Date)
	assert.Equal(t, "cc1", snap.Transactions[0].AccountID)
	assert.Equal(t, models.AccountTypeChecking, snap.Transactions[1].AccountType)

	require.Len(t, snap.Accounts, 2)
	require.NotNil(t, snap.Accounts[0].CreditLimit)
	assert.Equal(t, 5000.0, *snap.Accounts[0].CreditLimit)
	assert.Nil(t, snap.Accounts[1].CreditLimit)

	require.Len(t, snap.Subscriptions, 1)
	assert.Equal(t, models.BillingCycleWeekly, snap.Subscriptions[0].BillingCycle)
}

func TestLoadSnapshot_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	writeFile(t, path, `{"transactions":[{"id":"t1","description":"Coffee","amount":-4.5,"type":"EXPENSE","date":"2026-02-01T08:00:00Z"}],"accounts":[{"id":"sav1","type":"SAVINGS","balance":500}]}`)

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, -4.5, snap.Transactions[0].Amount)
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, models.AccountTypeSavings, snap.Accounts[0].Type)
	assert.Empty(t, snap.Subscriptions)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := LoadSnapshot(filepath.Join(dir, "missing.yaml"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "transactions: [unterminated")
		_, err := LoadSnapshot(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode yaml")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		writeFile(t, path, "{")
		_, err := LoadSnapshot(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode json")
	})
}

func TestLoadSnapshot_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, path, "\n")

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Accounts)
	assert.Empty(t, snap.Subscriptions)
}
