package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encode writes c as a grouped document in the given format, keeping group
// and response order.
func Encode(w io.Writer, c *Corpus, format Format) error {
	switch format {
	case FormatJSON, "":
		return encodeJSON(w, c)
	case FormatYAML:
		return encodeYAML(w, c)
	case FormatMsgpack:
		return encodeMsgpack(w, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodeJSON(w io.Writer, c *Corpus) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	i := 0
	for g := range c.Groups() {
		if i > 0 {
			bw.WriteByte(',')
		}
		i++
		key, err := json.Marshal(g.Name())
		if err != nil {
			return err
		}
		val, err := json.Marshal(g.Responses())
		if err != nil {
			return fmt.Errorf("group %q: %w", g.Name(), err)
		}
		bw.Write(key)
		bw.WriteByte(':')
		bw.Write(val)
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func encodeYAML(w io.Writer, c *Corpus) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for g := range c.Groups() {
		var val yaml.Node
		if err := val.Encode(g.Responses()); err != nil {
			return fmt.Errorf("group %q: %w", g.Name(), err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g.Name()},
			&val,
		)
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func encodeMsgpack(w io.Writer, c *Corpus) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeMapLen(c.Len()); err != nil {
		return err
	}
	for g := range c.Groups() {
		if err := enc.EncodeString(g.Name()); err != nil {
			return err
		}
		if err := enc.Encode(g.Responses()); err != nil {
			return fmt.Errorf("group %q: %w", g.Name(), err)
		}
	}
	return nil
}
