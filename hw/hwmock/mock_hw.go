// Package hwmock contains a hand-authored gomock-shaped mock of hw.Hardware,
// in the same EXPECT()-based idiom mockgen would produce (matching the
// teacher's generated mock/ndisapi.go used by ndisapi_test.go), since no
// go:generate invocation runs as part of this exercise.
package hwmock

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	hw "github.com/meow-chip/RouterSoftware/hw"
)

// MockHardware is a mock of the hw.Hardware interface.
type MockHardware struct {
	ctrl     *gomock.Controller
	recorder *MockHardwareMockRecorder
}

// MockHardwareMockRecorder is the mock recorder for MockHardware.
type MockHardwareMockRecorder struct {
	mock *MockHardware
}

// NewMockHardware creates a new mock instance.
func NewMockHardware(ctrl *gomock.Controller) *MockHardware {
	mock := &MockHardware{ctrl: ctrl}
	mock.recorder = &MockHardwareMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockHardware) EXPECT() *MockHardwareMockRecorder {
	return m.recorder
}

func (m *MockHardware) ReadByte(off int) byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadByte", off)
	ret0, _ := ret[0].(byte)
	return ret0
}

func (mr *MockHardwareMockRecorder) ReadByte(off interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadByte", reflect.TypeOf((*MockHardware)(nil).ReadByte), off)
}

func (m *MockHardware) WriteByte(off int, v byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WriteByte", off, v)
}

func (mr *MockHardwareMockRecorder) WriteByte(off, v interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteByte", reflect.TypeOf((*MockHardware)(nil).WriteByte), off, v)
}

func (m *MockHardware) ReadBytes(off, n int) []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadBytes", off, n)
	ret0, _ := ret[0].([]byte)
	return ret0
}

func (mr *MockHardwareMockRecorder) ReadBytes(off, n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadBytes", reflect.TypeOf((*MockHardware)(nil).ReadBytes), off, n)
}

func (m *MockHardware) WriteBytes(off int, data []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WriteBytes", off, data)
}

func (mr *MockHardwareMockRecorder) WriteBytes(off, data interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteBytes", reflect.TypeOf((*MockHardware)(nil).WriteBytes), off, data)
}

func (m *MockHardware) ReadUint16LE(off int) uint16 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadUint16LE", off)
	ret0, _ := ret[0].(uint16)
	return ret0
}

func (mr *MockHardwareMockRecorder) ReadUint16LE(off interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadUint16LE", reflect.TypeOf((*MockHardware)(nil).ReadUint16LE), off)
}

func (m *MockHardware) WriteUint16LE(off int, v uint16) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WriteUint16LE", off, v)
}

func (mr *MockHardwareMockRecorder) WriteUint16LE(off, v interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteUint16LE", reflect.TypeOf((*MockHardware)(nil).WriteUint16LE), off, v)
}

func (m *MockHardware) CellState(idx int) hw.State {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CellState", idx)
	ret0, _ := ret[0].(hw.State)
	return ret0
}

func (mr *MockHardwareMockRecorder) CellState(idx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CellState", reflect.TypeOf((*MockHardware)(nil).CellState), idx)
}

func (m *MockHardware) SetCellState(idx int, s hw.State) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetCellState", idx, s)
}

func (mr *MockHardwareMockRecorder) SetCellState(idx, s interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetCellState", reflect.TypeOf((*MockHardware)(nil).SetCellState), idx, s)
}

func (m *MockHardware) SubmitCommand(c hw.Cmd) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitCommand", c)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockHardwareMockRecorder) SubmitCommand(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitCommand", reflect.TypeOf((*MockHardware)(nil).SubmitCommand), c)
}

func (m *MockHardware) WriteUART(b byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WriteUART", b)
}

func (mr *MockHardwareMockRecorder) WriteUART(b interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteUART", reflect.TypeOf((*MockHardware)(nil).WriteUART), b)
}

var _ hw.Hardware = (*MockHardware)(nil)
