package nmeais

import "testing"

func TestVerifyChecksumValid(t *testing.T) {
	lines := []string{
		"!AIVDM,1,1,,A,13HOI:0P0000VOHLCnHQKwvL05Ip,0*23",
		"!BSVDM,1,1,,A,14S:Eb001ePRmHBTAAFnrmV60PRk,0*1F",
		"!BSVDM,2,2,8,B,88888888880,2*36",
	}
	for _, line := range lines {
		checked, err := VerifyChecksum([]byte(line))
		if err != nil {
			t.Errorf("%q: unexpected error: %s", line, err)
			continue
		}
		if !checked.Valid {
			t.Errorf("%q: expected a valid checksum", line)
		}
	}
}

func TestVerifyChecksumInvalid(t *testing.T) {
	line := "!AIVDM,1,1,,A,13HOI:0P0000VOHLCnHQKwvL05Ip,0*00"
	checked, err := VerifyChecksum([]byte(line))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if checked.Valid {
		t.Error("expected an invalid checksum")
	}
	if checked.Checksum != 0x00 {
		t.Errorf("got checksum %02X, want 00", checked.Checksum)
	}
}

func TestVerifyChecksumMalformed(t *testing.T) {
	cases := []string{
		"no bang or star here",
		"!AIVDM,missing,star",
		"!AIVDM,1,1,,A,body*GG", // non-hex checksum digits
	}
	for _, line := range cases {
		if _, err := VerifyChecksum([]byte(line)); err == nil {
			t.Errorf("%q: expected an error", line)
		}
	}
}
