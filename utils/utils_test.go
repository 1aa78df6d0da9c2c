package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/DrDelphi/FomoBot/data"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	amount, err := ParseAmount("1,000,000")
	require.Nil(t, err)
	assert.Equal(t, uint64(1000000), amount.Uint64())

	amount, err = ParseAmount(" 42 ")
	require.Nil(t, err)
	assert.Equal(t, uint64(42), amount.Uint64())

	_, err = ParseAmount("")
	assert.Equal(t, errEmptyAmount, err)

	_, err = ParseAmount("-5")
	assert.NotNil(t, err)

	_, err = ParseAmount("1.5")
	assert.NotNil(t, err)
}

func TestSaturatingAdd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(15), SaturatingAdd(5, 10))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64-5, 10))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, math.MaxUint64))
}

func TestNiceAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", NiceAmount(nil))
	assert.Equal(t, "0", NiceAmount(uint256.NewInt(0)))
	assert.Equal(t, "999", NiceAmount(uint256.NewInt(999)))
	assert.Equal(t, "1,000", NiceAmount(uint256.NewInt(1000)))
	assert.Equal(t, "12,345,678", NiceAmount(uint256.NewInt(12345678)))
}

func TestShortenAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ShortenAddress("erd1short"))
	assert.Equal(t, "erd1qyu5...ycr6th", ShortenAddress("erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"))
}

func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@john\\_doe \\*bold\\*", EscapeMarkdown("@john_doe *bold*"))
}

func TestFormatDbTgUser(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@alice", FormatDbTgUser(&data.Telegram{ID: 1, UserName: "alice"}))
	assert.Equal(t, "[Bob](tg://user?id=2)", FormatDbTgUser(&data.Telegram{ID: 2, FirstName: "Bob"}))
}

func TestWalletDerivation(t *testing.T) {
	t.Parallel()

	first := GetPrivateKeyFromSeed(1)
	assert.Len(t, first, 32)
	assert.Equal(t, first, GetPrivateKeyFromSeed(1))
	assert.NotEqual(t, first, GetPrivateKeyFromSeed(2))

	address := GetAddressFromPrivateKey(first)
	assert.True(t, strings.HasPrefix(address, "erd1"))
	assert.Len(t, address, 62)
}

func TestCustodianAddress(t *testing.T) {
	t.Parallel()

	conv, err := NewAddressConverter()
	require.Nil(t, err)

	_, err = GetCustodianAddress("", conv)
	assert.Equal(t, errEmptyCustodianSeed, err)

	custodian, err := GetCustodianAddress("fomo", conv)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(custodian, "erd1qqqqqqqqqqqq"))
	assert.True(t, IsCustodianAddress(custodian, conv))

	again, err := GetCustodianAddress("fomo", conv)
	require.Nil(t, err)
	assert.Equal(t, custodian, again)

	other, err := GetCustodianAddress("fomo-2", conv)
	require.Nil(t, err)
	assert.NotEqual(t, custodian, other)

	wallet := GetAddressFromPrivateKey(GetPrivateKeyFromSeed(7))
	assert.False(t, IsCustodianAddress(wallet, conv))
	assert.False(t, IsCustodianAddress("not an address", conv))
}
