package health

type Response struct {
	Status  string `json:"status" example:"online"`
	Service string `json:"service" example:"AI Lesson Planner"`
}

type PingResponse struct {
	Message string `json:"message"`
}
