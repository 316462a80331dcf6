package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240130120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024013001
<NAME>PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 4,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "leading blank lines",
			ofxData:       "\n\n  " + sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()

			entries, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, entries, tt.expectedCount)
			}
		})
	}
}

func TestParseBankEntries(t *testing.T) {
	entries, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	e1 := entries[0]
	assert.Equal(t, "2024011501", e1.FitID)
	assert.Equal(t, "STARBUCKS STORE #1234", e1.Description)
	assert.Equal(t, 25.50, e1.Amount)
	assert.True(t, e1.Debit)
	assert.Equal(t, "DEBIT", e1.Type)
	assert.Equal(t, "1234567890", e1.Account)
	assert.Equal(t, 2024, e1.Posted.Year())
	assert.Equal(t, time.January, e1.Posted.Month())
	assert.Equal(t, 15, e1.Posted.Day())

	e2 := entries[1]
	assert.Equal(t, "Whole Foods Market", e2.Description)
	assert.Equal(t, 125.00, e2.Amount)

	e3 := entries[2]
	assert.Equal(t, "CHECK #1234", e3.Description)
	assert.Equal(t, "CHECK", e3.Type)
	assert.Equal(t, 500.00, e3.Amount)

	credit := entries[3]
	assert.Equal(t, "PAYROLL", credit.Description)
	assert.Equal(t, 1500.00, credit.Amount)
	assert.False(t, credit.Debit)
}

func TestParseCreditCardEntries(t *testing.T) {
	entries, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "CC2024011001", entries[0].FitID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", entries[0].Description)
	assert.Equal(t, 45.99, entries[0].Amount)
	assert.Equal(t, "4111111111111111", entries[0].Account)

	assert.Equal(t, "CC2024011501", entries[1].FitID)
	assert.Equal(t, "NETFLIX.COM", entries[1].Description)
	assert.Equal(t, 15.00, entries[1].Amount)
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	got := parser.preprocessOFX("\n  <SEVERITY>Info</SEVERITY>\n<BANKACCTFROM\n<ACCTID>1\n")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>\n<BANKACCTFROM>\n<ACCTID>1\n", got)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		payee    *ofxgo.Payee
		name     string
		input    string
		memo     string
		expected string
	}{
		{name: "remove POS prefix", input: "POS PURCHASE STARBUCKS", expected: "STARBUCKS"},
		{name: "remove DEBIT CARD prefix", input: "DEBIT CARD PURCHASE WHOLE FOODS", expected: "WHOLE FOODS"},
		{name: "keep clean name", input: "NETFLIX.COM", expected: "NETFLIX.COM"},
		{name: "trim whitespace", input: "  AMAZON.COM  ", expected: "AMAZON.COM"},
		{name: "strip leading date", input: "01/15 CORNER DELI", expected: "CORNER DELI"},
		{name: "generic name uses memo", input: "PURCHASE", memo: "FARMERS MARKET", expected: "FARMERS MARKET"},
		{name: "payee wins", input: "POS PURCHASE X", payee: &ofxgo.Payee{Name: "Corner Cafe"}, expected: "Corner Cafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name:  ofxgo.String(tt.input),
				Memo:  ofxgo.String(tt.memo),
				Payee: tt.payee,
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestDebits(t *testing.T) {
	entries := []Entry{
		{FitID: "A", Description: "coffee", Amount: 3, Debit: true},
		{FitID: "B", Description: "salary", Amount: 1000},
		{FitID: "A", Description: "coffee again", Amount: 3, Debit: true},
		{FitID: "", Description: "cash", Amount: 20, Debit: true},
		{FitID: "", Description: "cash", Amount: 20, Debit: true},
	}

	seen := make(map[string]struct{})
	debits := Debits(entries, seen)
	require.Len(t, debits, 3)
	assert.Equal(t, "coffee", debits[0].Description)
	assert.Equal(t, "cash", debits[1].Description)
	assert.Contains(t, seen, "A")

	// A second file in the same run sees the FitIDs of the first.
	again := Debits([]Entry{{FitID: "A", Amount: 3, Debit: true}, {FitID: "C", Amount: 4, Debit: true}}, seen)
	require.Len(t, again, 1)
	assert.Equal(t, "C", again[0].FitID)
}
