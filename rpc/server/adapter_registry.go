package server

import (
	"fmt"
	"math"

	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/rpc/common"
)

func NewIRegistryServerAdapter() IRPCServerAdapter {
	return &iRegistryServerAdapterImpl{}
}

type iRegistryServerAdapterImpl struct{}

func (adapter *iRegistryServerAdapterImpl) Handle(req *common.Message, reg registry.IRegistry) *common.Message {
	if reg == nil {
		return common.NewErrorResponse("handler: registry is nil")
	}

	switch req.MsgType {
	case common.MsgTAdd:
		inserted, err := reg.Add(req.IP, req.Name, req.Packet)
		return common.NewAddResponse(inserted, err)
	case common.MsgTSearch:
		device, found, err := reg.Search(req.IP)
		return common.NewSearchResponse(toEntry(device), found, err)
	case common.MsgTDelete:
		removed, err := reg.Delete(req.IP)
		return common.NewDeleteResponse(removed, err)
	case common.MsgTUpdate:
		res, ok, err := reg.Update(req.IP, req.NewIP, req.Packet)
		return common.NewUpdateResponse(res.OldIP, res.OldPacket, ok, err)
	case common.MsgTList:
		devices, err := reg.List()
		entries := make([]common.DeviceEntry, len(devices))
		for i, d := range devices {
			entries[i] = toEntry(d)
		}
		return common.NewListResponse(entries, err)
	case common.MsgTStructure:
		text, err := reg.Structure()
		return common.NewStructureResponse(text, err)
	case common.MsgTStats:
		stats, err := reg.Stats()
		return common.NewStatsResponse(uint64(stats.Size), stats.SearchCount, err)
	case common.MsgTGenerate:
		if req.Count > math.MaxInt32 {
			return common.NewGenerateResponse(0, registry.NewError(registry.RetCInvalidOperation, "count too large"))
		}
		generated, err := reg.Generate(int(req.Count))
		return common.NewGenerateResponse(uint64(generated), err)
	case common.MsgTClear:
		return common.NewClearResponse(reg.Clear())
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC IRegistryAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}

func toEntry(d registry.Device) common.DeviceEntry {
	return common.DeviceEntry{IP: d.IP, Name: d.Name, Packet: d.Packet}
}
