// Package mocks holds gomock doubles for the port interfaces.
package mocks

//go:generate mockgen -destination=servicerequest.go -package=mocks -mock_names=Repository=MockServiceRequestRepository github.com/alanyang/roadside-relay/internal/port/servicerequest Repository
//go:generate mockgen -destination=notifier.go -package=mocks github.com/alanyang/roadside-relay/internal/port/notifier RoleNotifier,IdentityNotifier
