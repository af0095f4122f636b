package entity

import "time"

type ContactInquiry struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Subject   string    `json:"subject" firestore:"subject"`
	Message   string    `json:"message" firestore:"message"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
