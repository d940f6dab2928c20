package domain

import "time"

// PlaceholderAvatar is stored when a card is created without a photo.
const PlaceholderAvatar = "/api/placeholder/120/120"

type Profile struct {
	ID          string       `json:"id,omitempty" bson:"_id" firestore:"-"`
	Name        string       `json:"name" bson:"name" firestore:"name" binding:"required"`
	Title       string       `json:"title" bson:"title" firestore:"title" binding:"required"`
	Location    string       `json:"location" bson:"location" firestore:"location"`
	Avatar      string       `json:"avatar" bson:"avatar" firestore:"avatar"`
	Bio         string       `json:"bio" bson:"bio" firestore:"bio"`
	QRCode      string       `json:"qrCode" bson:"qrCode" firestore:"qrCode"`
	PaymentLink string       `json:"paymentLink,omitempty" bson:"paymentLink,omitempty" firestore:"paymentLink,omitempty"`
	Expertise   []string     `json:"expertise" bson:"expertise" firestore:"expertise"`
	Experience  []Experience `json:"experience" bson:"experience" firestore:"experience"`
	Contact     Contact      `json:"contact" bson:"contact" firestore:"contact"`
	Social      Social       `json:"social" bson:"social" firestore:"social"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type Experience struct {
	Role    string `json:"role" bson:"role" firestore:"role"`
	Company string `json:"company" bson:"company" firestore:"company"`
	Period  string `json:"period" bson:"period" firestore:"period"`
}

type Contact struct {
	Email string `json:"email" bson:"email" firestore:"email" binding:"required"`
	Phone string `json:"phone" bson:"phone" firestore:"phone"`
}

type Social struct {
	LinkedIn  string `json:"linkedin" bson:"linkedin" firestore:"linkedin"`
	GitHub    string `json:"github,omitempty" bson:"github,omitempty" firestore:"github,omitempty"`
	Portfolio string `json:"portfolio" bson:"portfolio" firestore:"portfolio"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty" firestore:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty" firestore:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty" firestore:"youtube,omitempty"`
	Medium    string `json:"medium,omitempty" bson:"medium,omitempty" firestore:"medium,omitempty"`
	Meeting   string `json:"meeting,omitempty" bson:"meeting,omitempty" firestore:"meeting,omitempty"`
	Resume    string `json:"resume,omitempty" bson:"resume,omitempty" firestore:"resume,omitempty"`
}

// Normalize replaces absent list fields with empty lists so every stored
// document has the same shape.
func (p *Profile) Normalize() {
	if p.Expertise == nil {
		p.Expertise = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
}

func (p *Profile) HasAvatar() bool {
	return p.Avatar != "" && p.Avatar != PlaceholderAvatar
}
