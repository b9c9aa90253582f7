package binance

import (
	"strings"
	"testing"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
12345,2021-05-04 10:30:00,Spot,Deposit,EUR,1000.00000000,
12345,2021-05-04 10:31:00,Spot,Buy,BTC,0.01577007,
12345,2021-05-04 10:31:00,Spot,Transaction Related,EUR,-500.00000000,
12345,2021-05-04 10:31:00,Spot,Fee,BTC,-0.00001577,
12345,2021-06-01 00:00:00,Spot,POS savings interest,ADA,0.12345678,
12345,2021-06-02 00:00:00,Spot,Liquid Swap add/sell,ADA,-10.00000000,
`

func TestReadStatement(t *testing.T) {
	protos, err := ReadStatement(strings.NewReader(sampleStatement))
	require.NoError(t, err)
	require.Len(t, protos, 6)

	assert.Equal(t, "EUR", protos[0].CoinTick)
	assert.Equal(t, cryptotracker.Deposit, protos[0].Kind)
	assert.Equal(t, "Spot", protos[0].Account)
	assert.Equal(t,
		time.Date(2021, 5, 4, 10, 30, 0, 0, time.UTC),
		protos[0].UTCTime)

	assert.Equal(t, cryptotracker.Buy, protos[1].Kind)
	assert.True(t, protos[1].Value.Equal(cryptotracker.Q(0.01577007)))

	// Ambiguous trade names resolve by sign.
	assert.Equal(t, cryptotracker.Sell, protos[2].Kind)
	assert.Equal(t, cryptotracker.Fee, protos[3].Kind)
	assert.Equal(t, cryptotracker.PosInterest, protos[4].Kind)
	assert.Equal(t, cryptotracker.LiquidSwapAdd, protos[5].Kind)
}

func TestReadStatement_SignResolution(t *testing.T) {
	const in = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
1,2021-05-04 10:30:00,Spot,The Easiest Way to Trade,BNB,0.50000000,
1,2021-05-04 10:30:00,Spot,Small assets exchange BNB,DOGE,-42.00000000,
`
	protos, err := ReadStatement(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, protos, 2)
	assert.Equal(t, cryptotracker.Buy, protos[0].Kind)
	assert.Equal(t, cryptotracker.Sell, protos[1].Kind)
}

func TestReadStatement_UnknownOperation(t *testing.T) {
	const in = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
1,2021-05-04 10:30:00,Spot,Mystery Stuff,BNB,0.5,
`
	_, err := ReadStatement(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mystery Stuff")
}

func TestReadStatement_BadHeader(t *testing.T) {
	const in = `a,b,c,d,e,f,g
1,2021-05-04 10:30:00,Spot,Buy,BNB,0.5,
`
	_, err := ReadStatement(strings.NewReader(in))
	assert.Error(t, err)
}
