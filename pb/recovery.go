// Package pb holds the wire messages described in recovery.proto. They are
// encoded with the reflection-based marshaler of gogo/protobuf.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// Scalar is a domain element. Prime field elements only use Re.
type Scalar struct {
	Re int64 `protobuf:"zigzag64,1,opt,name=re,proto3" json:"re,omitempty"`
	Im int64 `protobuf:"zigzag64,2,opt,name=im,proto3" json:"im,omitempty"`
}

func (m *Scalar) Reset()         { *m = Scalar{} }
func (m *Scalar) String() string { return proto.CompactTextString(m) }
func (*Scalar) ProtoMessage()    {}

// Sample is one encoded evaluation together with its position.
type Sample struct {
	Index uint32  `protobuf:"varint,1,opt,name=index,proto3" json:"index,omitempty"`
	Value *Scalar `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Sample) Reset()         { *m = Sample{} }
func (m *Sample) String() string { return proto.CompactTextString(m) }
func (*Sample) ProtoMessage()    {}

type SampleSet struct {
	Domain  string    `protobuf:"bytes,1,opt,name=domain,proto3" json:"domain,omitempty"`
	Samples []*Sample `protobuf:"bytes,2,rep,name=samples,proto3" json:"samples,omitempty"`
}

func (m *SampleSet) Reset()         { *m = SampleSet{} }
func (m *SampleSet) String() string { return proto.CompactTextString(m) }
func (*SampleSet) ProtoMessage()    {}

type Stage struct {
	Name   string    `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Values []*Scalar `protobuf:"bytes,2,rep,name=values,proto3" json:"values,omitempty"`
}

func (m *Stage) Reset()         { *m = Stage{} }
func (m *Stage) String() string { return proto.CompactTextString(m) }
func (*Stage) ProtoMessage()    {}

// Trace records every intermediate vector of a recovery run.
type Trace struct {
	Domain string   `protobuf:"bytes,1,opt,name=domain,proto3" json:"domain,omitempty"`
	Stages []*Stage `protobuf:"bytes,2,rep,name=stages,proto3" json:"stages,omitempty"`
}

func (m *Trace) Reset()         { *m = Trace{} }
func (m *Trace) String() string { return proto.CompactTextString(m) }
func (*Trace) ProtoMessage()    {}
