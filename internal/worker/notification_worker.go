package worker

import (
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/service"
)

// StartNotificationWorker subscribes the notification pipeline to
// complaint events. Each triggered run executes on its own detached
// goroutine inside the service.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
