package order

import (
	"encoding/json"
	"fmt"

	"smartdelivery/internal/core/domain/model/kernel"
)

// stepSnapshot is the stored JSON shape of one collection step. Coordinates
// are nullable: older manual plans may omit them.
type stepSnapshot struct {
	DepotID        string         `json:"depotId"`
	DepotName      string         `json:"depotName"`
	DepotLatitude  *float64       `json:"depotLatitude"`
	DepotLongitude *float64       `json:"depotLongitude"`
	Items          []itemSnapshot `json:"items"`
	OrderIDs       []string       `json:"orderIds"`
	Step           int            `json:"step"`
}

type itemSnapshot struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	OrderID     string `json:"orderId,omitempty"`
}

// EncodePlanSnapshot serializes collection steps to the JSON form stored on
// the order row. The output is a JSON array in visiting order.
func EncodePlanSnapshot(steps []CollectionStep) (string, error) {
	snapshots := make([]stepSnapshot, 0, len(steps))
	for _, step := range steps {
		snapshots = append(snapshots, snapshotFromStep(step))
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return "", fmt.Errorf("encode collection plan: %w", err)
	}
	return string(data), nil
}

// DecodePlanSnapshot parses a stored plan back into collection steps. An
// empty or blank string yields nil steps and no error. A malformed snapshot
// returns an error; callers treat that as an absent plan.
func DecodePlanSnapshot(raw string) ([]CollectionStep, error) {
	if raw == "" {
		return nil, nil
	}

	var snapshots []stepSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshots); err != nil {
		return nil, fmt.Errorf("decode collection plan: %w", err)
	}

	steps := make([]CollectionStep, 0, len(snapshots))
	for _, s := range snapshots {
		step, err := stepFromSnapshot(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func snapshotFromStep(step CollectionStep) stepSnapshot {
	s := stepSnapshot{
		DepotName: step.DepotName,
		Items:     make([]itemSnapshot, 0, len(step.Items)),
		OrderIDs:  make([]string, 0, len(step.OrderIDs)),
		Step:      step.Index,
	}
	if !step.DepotID.IsZero() {
		s.DepotID = step.DepotID.String()
	}
	if step.Location != nil {
		lat, lon := step.Location.Lat(), step.Location.Lon()
		s.DepotLatitude = &lat
		s.DepotLongitude = &lon
	}
	for _, item := range step.Items {
		snap := itemSnapshot{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if !item.ProductID.IsZero() {
			snap.ProductID = item.ProductID.String()
		}
		if !item.OrderID.IsZero() {
			snap.OrderID = item.OrderID.String()
		}
		s.Items = append(s.Items, snap)
	}
	for _, id := range step.OrderIDs {
		s.OrderIDs = append(s.OrderIDs, id.String())
	}
	return s
}

func stepFromSnapshot(s stepSnapshot) (CollectionStep, error) {
	step := CollectionStep{
		DepotName: s.DepotName,
		Index:     s.Step,
	}

	var err error
	if step.DepotID, err = uuidFromSnapshot(s.DepotID); err != nil {
		return CollectionStep{}, fmt.Errorf("decode collection plan: depotId: %w", err)
	}

	if s.DepotLatitude != nil && s.DepotLongitude != nil {
		loc, err := kernel.NewGeoPoint(*s.DepotLatitude, *s.DepotLongitude)
		if err != nil {
			return CollectionStep{}, fmt.Errorf("decode collection plan: depot coordinates: %w", err)
		}
		step.Location = &loc
	}

	for _, item := range s.Items {
		decoded := StepItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if decoded.ProductID, err = uuidFromSnapshot(item.ProductID); err != nil {
			return CollectionStep{}, fmt.Errorf("decode collection plan: productId: %w", err)
		}
		if decoded.OrderID, err = uuidFromSnapshot(item.OrderID); err != nil {
			return CollectionStep{}, fmt.Errorf("decode collection plan: orderId: %w", err)
		}
		step.Items = append(step.Items, decoded)
	}

	for _, raw := range s.OrderIDs {
		id, err := uuidFromSnapshot(raw)
		if err != nil {
			return CollectionStep{}, fmt.Errorf("decode collection plan: orderIds: %w", err)
		}
		if !id.IsZero() {
			step.OrderIDs = append(step.OrderIDs, id)
		}
	}

	return step, nil
}

// uuidFromSnapshot parses an optional identifier. Empty strings decode to
// the zero UUID so that untagged manual-plan entries remain readable.
func uuidFromSnapshot(raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromString(raw)
}
