package digest_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestHex(t *testing.T) {
	type table struct {
		name      string
		algorithm string
		data      string
		hash      string
	}

	tt := []table{
		{
			name:      "sha256-empty",
			algorithm: digest.AlgorithmSHA256,
			data:      "",
			hash:      "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:      "sha256-abc",
			algorithm: digest.AlgorithmSHA256,
			data:      "abc",
			hash:      "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:      "keccak256-empty",
			algorithm: digest.AlgorithmKeccak256,
			data:      "",
			hash:      "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
	}

	t.Log("Given the need to produce known digests.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen hashing %q with %s.", testID, tst.data, tst.algorithm)
			{
				f := func(t *testing.T) {
					h, err := digest.Retrieve(tst.algorithm)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to retrieve the hasher: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to retrieve the hasher.", success, testID)

					got := digest.Hex(h, []byte(tst.data))
					if got != tst.hash {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hash)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right digest.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right digest.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestHashDeterminism(t *testing.T) {
	type record struct {
		Index uint64 `json:"index"`
		Data  string `json:"data"`
	}

	t.Log("Given the need to hash the same value the same way every time.")
	{
		t.Logf("\tTest 0:\tWhen hashing a struct and a map twice.")
		{
			r := record{Index: 7, Data: "payload"}

			h1 := digest.Hash(digest.SHA256, r)
			h2 := digest.Hash(digest.SHA256, r)
			if h1 != h2 || len(h1) != 64 {
				t.Fatalf("\t%s\tTest 0:\tShould get the same 64 character digest: %s %s", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same 64 character digest.", success)

			m1 := map[string]any{"b": 2, "a": 1, "c": 3}
			m2 := map[string]any{"c": 3, "a": 1, "b": 2}
			if digest.Hash(digest.SHA256, m1) != digest.Hash(digest.SHA256, m2) {
				t.Fatalf("\t%s\tTest 0:\tShould ignore map insertion order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould ignore map insertion order.", success)

			if digest.Hash(digest.SHA256, r) == digest.Hash(digest.Keccak256, r) {
				t.Fatalf("\t%s\tTest 0:\tShould get different digests per algorithm.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get different digests per algorithm.", success)

			if got := digest.Hash(digest.SHA256, make(chan int)); got != "" {
				t.Fatalf("\t%s\tTest 0:\tShould get an empty digest for an unencodable value: %s", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould get an empty digest for an unencodable value.", success)
		}
	}
}

func TestRetrieveUnknown(t *testing.T) {
	t.Log("Given the need to reject unknown hash algorithms.")
	{
		t.Logf("\tTest 0:\tWhen asking for md5.")
		{
			if _, err := digest.Retrieve("md5"); !errors.Is(err, digest.ErrUnknownHasher) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrUnknownHasher: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrUnknownHasher.", success)
		}
	}
}
