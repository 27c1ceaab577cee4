package model

// Room is one of the guesthouse's bookable rooms. The room set is seeded
// once and treated as fixed; nothing in the service mutates it.
type Room struct {
	ID   string `json:"id" bson:"_id" validate:"required,uuid"`
	Name string `json:"name" bson:"name" validate:"required,min=1,max=50"`
}
