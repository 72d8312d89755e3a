package transfer

import "testing"

func TestSignaturesNormalize(t *testing.T) {
	sigs := DefaultSignatures()
	sigs.Transfer = "0xDDF252AD1BE2C89B69C2B068FC378DAA952BA7F163C4A11628F55A4DF523B3EF"

	normalized, err := sigs.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized.Transfer != DefaultSignatures().Transfer {
		t.Fatalf("transfer signature not lowercased: %s", normalized.Transfer)
	}
}

func TestSignaturesNormalizeInvalid(t *testing.T) {
	cases := []Signatures{
		{Transfer: "0x1234", Deposit: DefaultSignatures().Deposit, Withdrawal: DefaultSignatures().Withdrawal},
		{Transfer: DefaultSignatures().Transfer, Deposit: "not-hex", Withdrawal: DefaultSignatures().Withdrawal},
		{Transfer: DefaultSignatures().Transfer, Deposit: DefaultSignatures().Deposit, Withdrawal: ""},
	}
	for i, sigs := range cases {
		if _, err := sigs.Normalize(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestSignaturesMatches(t *testing.T) {
	sigs, err := DefaultSignatures().Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if !sigs.Matches("0xDDF252AD1BE2C89B69C2B068FC378DAA952BA7F163C4A11628F55A4DF523B3EF") {
		t.Fatalf("transfer signature should match case-insensitively")
	}
	if sigs.Matches("0xc3d58168c5ae7397731d063d5bbf3d657854427343f4c083240f7aacaa2d0f62") {
		t.Fatalf("unknown signature should not match")
	}
}
