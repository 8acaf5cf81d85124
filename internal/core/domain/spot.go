package domain

// Spot is one physical parking space. The ID is facility-assigned and
// unique; Category never changes after creation. Available is false
// exactly while a session occupies the spot.
type Spot struct {
	ID        int             `json:"id" bson:"spot_id"`
	Category  VehicleCategory `json:"category" bson:"category"`
	Available bool            `json:"available" bson:"available"`
}
