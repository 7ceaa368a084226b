package main

import (
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sentratech/roi-engine/internal/roi"
)

const maxBodyBytes = 1 << 20

type saveRequest struct {
	Title   string      `json:"title"`
	Company string      `json:"company"`
	Email   string      `json:"email"`
	Input   roi.Request `json:"input"`
}

// decodeROIRequest accepts either a JSON body or the calculator's form fields and
// rejects anything that is not a well-formed number before it reaches the engine.
func decodeROIRequest(r *http.Request) (roi.Request, error) {
	var req roi.Request
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form")
		}
		var err error
		if req, err = parseROIForm(r); err != nil {
			return req, err
		}
	}

	return req, validateROIRequest(req)
}

func decodeSaveRequest(r *http.Request) (saveRequest, error) {
	var req saveRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form")
		}
		input, err := parseROIForm(r)
		if err != nil {
			return req, err
		}
		req = saveRequest{
			Title:   r.FormValue("title"),
			Company: r.FormValue("company"),
			Email:   r.FormValue("email"),
			Input:   input,
		}
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	req.Email = strings.TrimSpace(req.Email)
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return req, fmt.Errorf("email is invalid")
	}

	return req, validateROIRequest(req.Input)
}

func decodeAgentsRequest(r *http.Request) (agentsRequest, error) {
	var req agentsRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form")
		}
		req.Country = r.FormValue("country")
		var err error
		if req.Agents, err = parseFloat(r.FormValue("agents"), "agents"); err != nil {
			return req, err
		}
	}

	req.Country = strings.TrimSpace(req.Country)
	if req.Country == "" {
		return req, fmt.Errorf("country is required")
	}
	if req.Agents < 0 {
		return req, fmt.Errorf("agents must be greater than or equal to 0")
	}
	return req, nil
}

func parseROIForm(r *http.Request) (roi.Request, error) {
	req := roi.Request{
		Country:               strings.TrimSpace(r.FormValue("country")),
		Mode:                  roi.Mode(strings.TrimSpace(r.FormValue("mode"))),
		VolumeSubMode:         roi.VolumeSubMode(strings.TrimSpace(r.FormValue("volumeSubMode"))),
		ShowInternalBreakdown: parseFlag(r.FormValue("showInternalBreakdown")),
	}

	numbers := []struct {
		field string
		dst   *float64
	}{
		{"calls", &req.Calls},
		{"interactions", &req.Interactions},
		{"callAHT", &req.CallAHT},
		{"interactionAHT", &req.InteractionAHT},
		{"automationPct", &req.AutomationPct},
		{"sentraPricePer1k", &req.SentraPricePer1k},
		{"bundlesPerMonth", &req.BundlesPerMonth},
		{"implCost", &req.ImplCost},
	}
	for _, n := range numbers {
		v, err := parseFloat(r.FormValue(n.field), n.field)
		if err != nil {
			return req, err
		}
		*n.dst = v
	}

	months, err := strconv.Atoi(strings.TrimSpace(r.FormValue("periodMonths")))
	if err != nil {
		return req, fmt.Errorf("periodMonths must be an integer")
	}
	req.PeriodMonths = months

	if req.AgentCount, err = parseOptionalFloat(r.FormValue("agentCount"), "agentCount"); err != nil {
		return req, err
	}
	if req.ManualAgentCount, err = parseOptionalFloat(r.FormValue("manualAgentCount"), "manualAgentCount"); err != nil {
		return req, err
	}

	return req, nil
}

func validateROIRequest(req roi.Request) error {
	if req.Country == "" {
		return fmt.Errorf("country is required")
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"calls", req.Calls},
		{"interactions", req.Interactions},
		{"callAHT", req.CallAHT},
		{"interactionAHT", req.InteractionAHT},
		{"sentraPricePer1k", req.SentraPricePer1k},
		{"bundlesPerMonth", req.BundlesPerMonth},
		{"implCost", req.ImplCost},
	}
	for _, n := range nonNegative {
		if n.value < 0 {
			return fmt.Errorf("%s must be greater than or equal to 0", n.field)
		}
	}

	if req.AutomationPct < 0 || req.AutomationPct > 1 {
		return fmt.Errorf("automationPct must be between 0 and 1")
	}
	if req.PeriodMonths <= 0 {
		return fmt.Errorf("periodMonths must be greater than 0")
	}
	if req.AgentCount != nil && *req.AgentCount < 0 {
		return fmt.Errorf("agentCount must be greater than or equal to 0")
	}
	if req.ManualAgentCount != nil && *req.ManualAgentCount < 0 {
		return fmt.Errorf("manualAgentCount must be greater than or equal to 0")
	}
	return nil
}

func parseFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	return value, nil
}

func parseOptionalFloat(raw, field string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseFloat(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}
