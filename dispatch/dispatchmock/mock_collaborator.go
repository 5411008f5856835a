// Package dispatchmock contains a hand-authored gomock-shaped mock of
// dispatch.Collaborator, in the same idiom as hw/hwmock.
package dispatchmock

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	dispatch "github.com/meow-chip/RouterSoftware/dispatch"
)

// MockCollaborator is a mock of the dispatch.Collaborator interface.
type MockCollaborator struct {
	ctrl     *gomock.Controller
	recorder *MockCollaboratorMockRecorder
}

// MockCollaboratorMockRecorder is the mock recorder for MockCollaborator.
type MockCollaboratorMockRecorder struct {
	mock *MockCollaborator
}

// NewMockCollaborator creates a new mock instance.
func NewMockCollaborator(ctrl *gomock.Controller) *MockCollaborator {
	mock := &MockCollaborator{ctrl: ctrl}
	mock.recorder = &MockCollaboratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCollaborator) EXPECT() *MockCollaboratorMockRecorder {
	return m.recorder
}

func (m *MockCollaborator) ReceiveIPPacket(payload []byte, srcMac [6]byte, ifIndex uint8) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ReceiveIPPacket", payload, srcMac, ifIndex)
}

func (mr *MockCollaboratorMockRecorder) ReceiveIPPacket(payload, srcMac, ifIndex interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReceiveIPPacket", reflect.TypeOf((*MockCollaborator)(nil).ReceiveIPPacket), payload, srcMac, ifIndex)
}

var _ dispatch.Collaborator = (*MockCollaborator)(nil)
