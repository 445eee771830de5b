package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Column selects a display column. In a configuration file it is written either as a header
// name ('Date'), a zero-based column index (3) or a mapping with name/index/label fields.
type Column struct {
	Name  string `yaml:"name" json:"name"`
	Index int    `yaml:"index" json:"index"`
	Label string `yaml:"label" json:"label"`
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!int" {
			index, err := strconv.Atoi(node.Value)
			if err != nil {
				return err
			}

			*c = Column{Index: index}
			return nil
		}

		*c = Column{Name: node.Value}
		return nil

	case yaml.MappingNode:
		type column Column

		var v column
		if err := node.Decode(&v); err != nil {
			return err
		}

		*c = Column(v)
		return nil

	default:
		return fmt.Errorf("invalid column at line %d", node.Line)
	}
}

func (c *Column) UnmarshalJSON(bytes []byte) error {
	var index int
	if err := json.Unmarshal(bytes, &index); err == nil {
		*c = Column{Index: index}
		return nil
	}

	var name string
	if err := json.Unmarshal(bytes, &name); err == nil {
		*c = Column{Name: name}
		return nil
	}

	type column Column

	var v column
	if err := json.Unmarshal(bytes, &v); err != nil {
		return fmt.Errorf("invalid column %s", string(bytes))
	}

	*c = Column(v)

	return nil
}
