// file:fpmine/pkg/x_fptree/sink.go
package x_fptree

//---------------------
// Sinks
//---------------------

// Sink receives every emitted itemset, in emission order.
// Returning an error stops mining.
type Sink interface {
	Emit(Itemset) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Itemset) error

func (f SinkFunc) Emit(s Itemset) error { return f(s) }

// Collector keeps all itemsets in memory.
type Collector struct {
	Itemsets []Itemset
}

func (c *Collector) Emit(s Itemset) error {
	c.Itemsets = append(c.Itemsets, s)
	return nil
}

// Counter only counts itemsets.
type Counter struct {
	N uint64
}

func (c *Counter) Emit(Itemset) error {
	c.N++
	return nil
}

// MultiSink fans out to several sinks and stops at the first error.
type MultiSink []Sink

func (m MultiSink) Emit(s Itemset) error {
	for _, sk := range m {
		if sk == nil {
			continue
		}
		if err := sk.Emit(s); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops everything.
var Discard Sink = SinkFunc(func(Itemset) error { return nil })
