package state

import (
	"strings"
	"testing"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestDeleteEntryReportsFailure(t *testing.T) {
	var events []string
	ev := func(v string, args ...any) { events = append(events, v) }

	st, err := New(Config{Difficulty: 2, EvHandler: ev})
	if err != nil {
		t.Fatalf("unable to construct the ledger: %v", err)
	}

	t.Log("Given the need to surface mempool delete failures.")
	{
		t.Logf("\tTest 0:\tWhen deleting an entry that isn't pending.")
		{
			events = nil
			st.deleteEntry("missing")

			var warned bool
			for _, e := range events {
				if strings.Contains(e, "deleteEntry: WARNING") {
					warned = true
				}
			}

			if !warned {
				t.Fatalf("\t%s\tTest 0:\tShould send a warning event: %v", failed, events)
			}
			t.Logf("\t%s\tTest 0:\tShould send a warning event.", success)
		}

		t.Logf("\tTest 1:\tWhen deleting a pending entry.")
		{
			entry := st.SubmitData("a")

			events = nil
			st.deleteEntry(entry.ID)

			for _, e := range events {
				if strings.Contains(e, "deleteEntry: WARNING") {
					t.Fatalf("\t%s\tTest 1:\tShould not send a warning event.", failed)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould not send a warning event.", success)

			if st.QueryMempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould remove the entry.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould remove the entry.", success)
		}
	}
}
