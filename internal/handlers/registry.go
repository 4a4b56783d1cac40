package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	CastingHandler      *CastingHandler
	AssignmentHandler   *AssignmentHandler
	NotificationHandler *NotificationHandler
}
