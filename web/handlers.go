package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"bountyninja/bountyninja"
	"bountyninja/consensus/status"
	"bountyninja/consensus/voting"
	"bountyninja/escrow"
	"bountyninja/messaging/records"
	"bountyninja/projection"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type taskResponse struct {
	Task          projection.Task         `json:"task"`
	Status        status.Status           `json:"status"`
	TotalPledged  bountyninja.Sats        `json:"total_pledged"`
	SolutionCount int                     `json:"solution_count"`
	Tallies       map[string]voting.Tally `json:"tallies"`
	RevisionDiffs []string                `json:"revision_diffs,omitempty"`
}

func (s *Server) composeTask(w http.ResponseWriter, r *http.Request) (*projection.TaskView, bool) {
	addr, err := bountyninja.ParseTaskAddress(mux.Vars(r)["addr"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	recs, ok := records.FetchTaskRecords(addr)
	if !ok {
		http.Error(w, "unknown task", http.StatusNotFound)
		return nil, false
	}
	view, ok := projection.NewTaskView(recs)
	if !ok {
		http.Error(w, "unknown task", http.StatusNotFound)
		return nil, false
	}
	return &view, true
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	view, ok := s.composeTask(w, r)
	if !ok {
		return
	}
	hasConsensus := voting.HasConsensus(view)
	derived := status.Derive(view, time.Now(), hasConsensus)
	StatusDerivations.Inc()
	s.Broadcast.Publish(view.Task.Address().String(), string(derived))
	tallies := make(map[string]voting.Tally)
	for id, tally := range voting.TallyAll(view) {
		tallies[id] = tally
	}
	writeJSON(w, taskResponse{
		Task:          view.Task,
		Status:        derived,
		TotalPledged:  view.TotalPledged,
		SolutionCount: view.SolutionCount(),
		Tallies:       tallies,
		RevisionDiffs: view.RevisionDiffs(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	view, ok := s.composeTask(w, r)
	if !ok {
		return
	}
	derived := status.Derive(view, time.Now(), voting.HasConsensus(view))
	StatusDerivations.Inc()
	s.Broadcast.Publish(view.Task.Address().String(), string(derived))
	writeJSON(w, map[string]string{"status": string(derived)})
}

// handlePayoutQR renders the task's published payout payload as a QR code.
// Multi-mint payloads carry one token per line inside a single code.
func (s *Server) handlePayoutQR(w http.ResponseWriter, r *http.Request) {
	view, ok := s.composeTask(w, r)
	if !ok {
		return
	}
	if len(view.Payouts) == 0 {
		http.Error(w, "no payouts for task", http.StatusNotFound)
		return
	}
	payload := view.Payouts[len(view.Payouts)-1].Token
	png, err := escrow.PayloadQR(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleFees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Escrow.Fees().Summaries())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		bountyninja.LogCLI(err.Error(), 2)
	}
}
