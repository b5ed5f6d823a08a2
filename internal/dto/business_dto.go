package dto

type BusinessContactInput struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type BusinessSettingsInput struct {
	Currency *string `json:"currency"`
	Timezone *string `json:"timezone"`
}

// BusinessRequest is used for both create and update; nil fields are left alone.
type BusinessRequest struct {
	Name               *string                `json:"name"`
	Contact            *BusinessContactInput  `json:"contact"`
	Settings           *BusinessSettingsInput `json:"settings"`
	SubscriptionStatus *string                `json:"subscriptionStatus"`
}
