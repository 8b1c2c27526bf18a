package serializer

import (
	"encoding/json"

	"github.com/ValentinKolb/echoprobe/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding.
// Byte slices (the echo payload) are base64 encoded by encoding/json.
func NewJSONSerializer() IRPCSerializer {
	return jsonSerializerImpl{}
}

type jsonSerializerImpl struct{}

func (jsonSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	// reset first, json leaves omitted fields untouched
	*msg = common.Message{}
	return json.Unmarshal(b, msg)
}
