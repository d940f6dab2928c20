package domain

import "time"

type Payment struct {
	ID         string       `json:"id,omitempty" bson:"_id" firestore:"-"`
	WalletName string       `json:"walletName" bson:"walletName" firestore:"walletName"`
	PaymentQR  string       `json:"paymentQR" bson:"paymentQR" firestore:"paymentQR"`
	PayLink    string       `json:"payLink" bson:"payLink" firestore:"payLink"`
	Business   BusinessInfo `json:"business" bson:"business" firestore:"business"`
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

type BusinessInfo struct {
	Name        string `json:"name" bson:"name" firestore:"name"`
	Company     string `json:"company" bson:"company" firestore:"company"`
	Description string `json:"description" bson:"description" firestore:"description"`
	Phone       string `json:"phone" bson:"phone" firestore:"phone"`
	Email       string `json:"email" bson:"email" firestore:"email"`
	Website     string `json:"website" bson:"website" firestore:"website"`
	Address     string `json:"address" bson:"address" firestore:"address"`
}
