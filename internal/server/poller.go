package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/izzat1998/terminal-pro-sub004/pkg/geo"
	"github.com/izzat1998/terminal-pro-sub004/pkg/placement"
)

// SlotRecord is one yard slot as served by the terminal backend. The
// drawing coordinates are raw CAD values; container_entry is absent for
// empty slots.
type SlotRecord struct {
	ID            string          `json:"id"`
	DxfX          float64         `json:"dxf_x"`
	DxfY          float64         `json:"dxf_y"`
	Rotation      float64         `json:"rotation"`
	ContainerSize string          `json:"container_size"`
	Tier          int             `json:"tier"`
	Container     *ContainerEntry `json:"container_entry,omitempty"`
}

// ContainerEntry is the domain record joined to an occupied slot.
type ContainerEntry struct {
	Number      string  `json:"number"`
	Status      string  `json:"status"`
	DwellDays   float64 `json:"dwell_days"`
	Hazmat      bool    `json:"hazmat"`
	HazmatClass string  `json:"hazmat_class,omitempty"`
	Company     string  `json:"company,omitempty"`
	Vessel      string  `json:"vessel,omitempty"`
	Booking     string  `json:"booking,omitempty"`
}

// Poller periodically fetches slot records from the backend and swaps
// the session's placement set. A failed fetch keeps the previous
// snapshot; the viewer shows stale data rather than an empty yard.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	session  *Session
	log      *slog.Logger
}

// NewPoller creates a poller for the session's configured backend.
func NewPoller(session *Session, log *slog.Logger) *Poller {
	b := session.Spec.Backend
	return &Poller{
		url:      b.URL,
		interval: time.Duration(b.RefreshSeconds) * time.Second,
		client:   &http.Client{Timeout: 10 * time.Second},
		session:  session,
		log:      log,
	}
}

// Run fetches once immediately, then on every interval tick until the
// context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if err := p.RefreshOnce(ctx); err != nil {
		p.log.Error("slot refresh failed", "url", p.url, "error", err)
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.RefreshOnce(ctx); err != nil {
				p.log.Error("slot refresh failed", "url", p.url, "error", err)
			}
		}
	}
}

// RefreshOnce fetches the slot records and applies them to the session.
func (p *Poller) RefreshOnce(ctx context.Context) error {
	records, err := p.fetch(ctx)
	if err != nil {
		return err
	}
	report := p.session.PlaceItems(p.items(records))
	p.log.Info("slot records applied",
		"records", len(records), "summary", report.Summary)
	return nil
}

func (p *Poller) fetch(ctx context.Context) ([]SlotRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching slot records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("slot record endpoint returned %s", resp.Status)
	}

	var records []SlotRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding slot records: %w", err)
	}
	return records, nil
}

// items converts slot records to placement inputs. Empty slots are
// skipped; the yard renders containers, not vacancies. The zone letter
// comes from the slot's grid column so hover labels and statistics
// agree.
func (p *Poller) items(records []SlotRecord) []placement.Item {
	items := make([]placement.Item, 0, len(records))
	for _, r := range records {
		if r.Container == nil {
			continue
		}
		point := geo.Pt(r.DxfX, r.DxfY)
		id := r.Container.Number
		if id == "" {
			id = r.ID
		}
		items = append(items, placement.Item{
			ID:       id,
			Zone:     p.session.ZoneForPoint(point),
			Point:    point,
			Rotation: r.Rotation,
			Kind:     blockKind(r.ContainerSize),
			Tier:     r.Tier,
			Data: &placement.ContainerData{
				Status:      placement.Status(r.Container.Status),
				DwellDays:   r.Container.DwellDays,
				Hazmat:      r.Container.Hazmat,
				HazmatClass: r.Container.HazmatClass,
				Company:     r.Container.Company,
				Vessel:      r.Container.Vessel,
				Booking:     r.Container.Booking,
			},
		})
	}
	return items
}

func blockKind(size string) placement.BlockKind {
	switch size {
	case "20", "20ft":
		return placement.Block20ft
	default:
		return placement.Block40ft
	}
}
