package client

import (
	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/serializer"
	"github.com/ValentinKolb/ipfinder/rpc/transport"
)

// NewRPCRegistry creates a new RPC registry
// The function takes a network ID, a config, a transport and a serializer as parameters
// It returns a registry.IRegistry and an error
func NewRPCRegistry(
	networkId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (registry.IRegistry, error) {

	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &rpcRegistry{
		rpcClientAdapter{
			networkId:  networkId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

type rpcRegistry struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the registry package in interface.go)
// --------------------------------------------------------------------------

func (r *rpcRegistry) Add(ip, name string, packet *string) (bool, error) {
	resp, err := r.invoke(common.NewAddRequest(ip, name, packet))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (r *rpcRegistry) Search(ip string) (registry.Device, bool, error) {
	resp, err := r.invoke(common.NewSearchRequest(ip))
	if err != nil || !resp.Ok {
		return registry.Device{}, false, err
	}
	return registry.Device{IP: resp.IP, Name: resp.Name, Packet: resp.Packet}, true, nil
}

func (r *rpcRegistry) Delete(ip string) (bool, error) {
	resp, err := r.invoke(common.NewDeleteRequest(ip))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (r *rpcRegistry) Update(oldIP string, newIP, newPacket *string) (registry.UpdateResult, bool, error) {
	resp, err := r.invoke(common.NewUpdateRequest(oldIP, newIP, newPacket))
	if err != nil || !resp.Ok {
		return registry.UpdateResult{}, false, err
	}
	return registry.UpdateResult{OldIP: resp.OldIP, OldPacket: resp.Packet}, true, nil
}

func (r *rpcRegistry) List() ([]registry.Device, error) {
	resp, err := r.invoke(common.NewListRequest())
	if err != nil {
		return nil, err
	}
	devices := make([]registry.Device, len(resp.Devices))
	for i, d := range resp.Devices {
		devices[i] = registry.Device{IP: d.IP, Name: d.Name, Packet: d.Packet}
	}
	return devices, nil
}

func (r *rpcRegistry) Structure() (string, error) {
	resp, err := r.invoke(common.NewStructureRequest())
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (r *rpcRegistry) Stats() (registry.Stats, error) {
	resp, err := r.invoke(common.NewStatsRequest())
	if err != nil {
		return registry.Stats{}, err
	}
	return registry.Stats{Size: int(resp.Count), SearchCount: resp.SearchCount}, nil
}

func (r *rpcRegistry) Generate(count int) (int, error) {
	// the count is unsigned on the wire
	if count < 0 {
		return 0, registry.NewError(registry.RetCInvalidOperation, "count must not be negative")
	}
	resp, err := r.invoke(common.NewGenerateRequest(uint64(count)))
	if err != nil {
		return 0, err
	}
	return int(resp.Count), nil
}

func (r *rpcRegistry) Clear() error {
	_, err := r.invoke(common.NewClearRequest())
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (r *rpcRegistry) invoke(req *common.Message) (*common.Message, error) {
	return invokeRPCRequest(r.networkId, req, r.transport, r.serializer)
}
