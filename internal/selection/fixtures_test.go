package selection_test

import (
	"time"

	"propmatch/internal/descriptor"
	"propmatch/internal/reflectmodel"
)

type Alpha struct{ Betha Betha }
type Betha struct{ Gamma Gamma }
type Gamma struct{ Delta Delta }
type Delta struct{ Name string }

type Bar struct {
	Name string
	Code int
}

type Foo struct {
	Id  int
	Bar Bar
}

type Exact struct {
	BarName string
	Bar     Bar
}

type Filter struct {
	Id    *int
	BarId *int
}

type FooBar struct {
	Id  int
	Bar FooBarBar
}

type FooBarBar struct {
	Id int
}

type Hello struct {
	Name  string
	Hello string
}

type DateTimeOffset struct {
	Time   time.Time
	Offset int
}

type Dated struct {
	Date DateTimeOffset
}

type DateTime struct {
	Date time.Time
}

type ITargetBar interface {
	GetName() string
	SetName(string)
}

type TargetBar struct {
	Name string
	Date time.Time
}

func (b *TargetBar) GetName() string     { return b.Name }
func (b *TargetBar) SetName(name string) { b.Name = name }

type OriginFoo struct {
	Name    string
	Bar     *TargetBar
	BarName string
}

type TargetFoo struct {
	Name string
	Bar  ITargetBar
}

type ReadOnly interface {
	GetInner() Delta
}

type Holder struct {
	Holder ReadOnly
}

type ID struct{ Number string }
type Id struct{ Number string }

type UpperOwner struct{ ID ID }
type LowerOwner struct{ Id Id }

type CustomerRef struct{ Code string }
type Address struct{ Street string }

type Order struct {
	Customer        CustomerRef
	CustomerAddress Address
}

type Node struct {
	Name string
	Next *Node
}

type NodeDTO struct {
	Name string
	Next *NodeDTO
}

type Counter struct{ Count int32 }
type WideCounter struct{ Count int64 }

type Item struct {
	Sku string
	Qty int
}

type ItemDTO struct {
	Sku string
	Qty int32
}

type Cart struct{ Items []Item }
type CartDTO struct{ Items []ItemDTO }

type Pointers struct {
	A *int
	B int
	C *int32
}

type Values struct {
	A int
	B *int
	C *int64
}

type Tagged struct {
	Customer string `map:"Bar.Name"`
	Other    string
}

type base struct{ Id int }

type Derived struct {
	base
	Name string
}

func newRegistry() *reflectmodel.Registry {
	return reflectmodel.NewRegistry(reflectmodel.Options{})
}

func typeOf[T any](r *reflectmodel.Registry) *descriptor.Type {
	return reflectmodel.Of[T](r)
}

type FooBarPtr struct {
	Id  int
	Bar *FooBarBar
}

type OnlyBarName struct {
	BarName string
}

type Snake struct {
	Foo_Bar Bar
}

type CodedSource struct {
	Id    int
	Inner SourceInner
}

type SourceInner struct {
	Id    int
	Extra string
}

type CodedTarget struct {
	Code  int
	Inner TargetInner
}

type TargetInner struct {
	Id int `map:"Extra"`
}
