// Package api implements the HTTP/JSON client for the AutoNeura campaign
// backend. The wire contract is owned by the server; this package decodes
// it defensively (IDs may arrive as numbers, free-text fields as null) and
// presents normalized Go types to the rest of the console.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque, server-assigned campaign identifier. The backend emits
// it as a JSON string or number depending on the storage column; both
// decode to the same string form.
type ID string

// UnmarshalJSON accepts string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("api: invalid id %s: %w", s, err)
	}
	*id = ID(n.String())
	return nil
}

// Text is a free-text field that tolerates JSON strings, numbers, and null.
// The backend stores some of these in numeric columns (ticket price), so a
// number is formatted back to its literal form. Null decodes to "".
type Text string

// UnmarshalJSON accepts string, number, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*t = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*t = Text(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("api: cannot decode %s as text", s)
}

// Campaign status values as emitted by the backend.
const (
	StatusActive = "active"
	StatusPaused = "paused"
)

// CampaignSummary is the list-view projection of a campaign, one element
// of the GET /api/mis-campanas response. Counts default to zero;
// leads_count is absent from some backend versions.
type CampaignSummary struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	Prospects int    `json:"prospects_count"`
	Leads     int    `json:"leads_count"`
}

// CampaignDetail is the single-campaign projection returned by
// GET /api/campana/{id}. Absent free-text fields decode to "".
type CampaignDetail struct {
	ID                 ID     `json:"id"`
	Name               string `json:"campaign_name"`
	ProductDescription string `json:"product_description"`
	TargetAudience     string `json:"target_audience"`
	ProductType        string `json:"product_type"`
	Languages          string `json:"languages"`
	GeoLocation        string `json:"geo_location"`
	TicketPrice        Text   `json:"ticket_price"`
	Competitors        string `json:"competitors"`
	CTAGoal            string `json:"cta_goal"`
	PainPoints         string `json:"pain_points_defined"`
	ToneOfVoice        string `json:"tone_voice"`
	RedFlags           string `json:"red_flags"`
	Constitution       string `json:"adn_corporativo"`
	Blackboard         string `json:"pizarron_contexto"`
	DailyLimit         int    `json:"daily_prospects_limit"`
	WhatsAppNumber     string `json:"whatsapp_number"`
	SalesLink          string `json:"sales_link"`
}

// CreatePayload is the POST /api/crear-campana request body. The key names
// are the backend's own (Spanish) and must not be renamed client-side.
type CreatePayload struct {
	Name           string `json:"nombre"`
	Sells          string `json:"que_vende"`
	Audience       string `json:"a_quien"`
	Languages      string `json:"idiomas"`
	Location       string `json:"ubicacion"`
	TicketPrice    string `json:"ticket_producto"`
	CTAGoal        string `json:"objetivo_cta"`
	Competitors    string `json:"competidores_principales"`
	PainPoints     string `json:"dolores_pain_points"`
	RedFlags       string `json:"red_flags"`
	ToneOfVoice    string `json:"tono_marca"`
	Constitution   string `json:"ai_constitution"`
	Blackboard     string `json:"ai_blackboard"`
	ProductType    string `json:"tipo_producto"`
	WhatsAppNumber string `json:"numero_whatsapp"`
	SalesLink      string `json:"enlace_venta"`
}

// UpdatePayload is the POST /api/actualizar-campana request body: the
// campaign id plus every editable detail field. The server may apply
// further normalization, so callers re-fetch rather than trusting the
// payload as the new truth.
type UpdatePayload struct {
	ID                 ID     `json:"id"`
	Name               string `json:"campaign_name"`
	ProductDescription string `json:"product_description"`
	TargetAudience     string `json:"target_audience"`
	Languages          string `json:"languages"`
	TicketPrice        string `json:"ticket_price"`
	Competitors        string `json:"competitors"`
	CTAGoal            string `json:"cta_goal"`
	PainPoints         string `json:"pain_points_defined"`
	RedFlags           string `json:"red_flags"`
	ToneOfVoice        string `json:"tone_voice"`
	Constitution       string `json:"adn_corporativo"`
	Blackboard         string `json:"pizarron_contexto"`
	WhatsAppNumber     string `json:"whatsapp_number"`
	SalesLink          string `json:"sales_link"`
}

// DashboardData is the server-computed rollup from GET /api/dashboard-data.
// The KPI values are taken as delivered; tasa arrives preformatted ("12.5%").
type DashboardData struct {
	KPIs struct {
		Total     int    `json:"total"`
		Qualified int    `json:"calificados"`
		Rate      string `json:"tasa"`
	} `json:"kpis"`
	Campaigns []RollupCampaign `json:"campanas"`
}

// RollupCampaign is one row of the dashboard rollup table.
type RollupCampaign struct {
	ID        ID     `json:"id"`
	Name      string `json:"nombre"`
	Date      string `json:"fecha"`
	Status    string `json:"estado"`
	Prospects int    `json:"encontrados"`
	Qualified int    `json:"calificados"`
}
